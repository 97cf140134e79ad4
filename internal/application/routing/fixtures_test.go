package routing

import (
	"github.com/google/uuid"
	"github.com/modelserve/gateway/internal/domain/catalog"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/subscription"
	"github.com/modelserve/gateway/internal/domain/workspace"
	"github.com/modelserve/gateway/internal/infrastructure/identity"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const (
	testUser       = "alice@example.com"
	testProduct    = "sentiment"
	testDeployment = "eu"
	testVersion    = "v1"
	testWorkspace  = "ws-eu"
)

var testSubscriptionID = uuid.MustParse("7f4b0bb4-6f6a-4de4-a0d8-0a7d41cd3a1c")

func fixtureProduct() *catalog.Product {
	product, _ := catalog.NewProduct(testProduct, "owner@example.com", catalog.ProductTypeTrainYourOwnModel)
	return product
}

func fixtureDeployment() *catalog.Deployment {
	deployment, _ := catalog.NewDeployment(testProduct, testDeployment)
	return deployment
}

func fixtureVersion() *catalog.APIVersion {
	return &catalog.APIVersion{
		BaseEntity:        shared.NewBaseEntity(),
		ProductName:       testProduct,
		DeploymentName:    testDeployment,
		Name:              testVersion,
		WorkspaceName:     testWorkspace,
		AuthMode:          workspace.AuthModeToken,
		TrainAPI:          "https://pipelines.example.com/train",
		BatchInferenceAPI: "https://pipelines.example.com/batch",
		DeployAPI:         "https://pipelines.example.com/deploy",
		RealTimeAPI:       "https://score.example.com/predict",
	}
}

func fixtureWorkspace() *workspace.AMLWorkspace {
	return &workspace.AMLWorkspace{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        testWorkspace,
		ResourceID:  "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.MachineLearningServices/workspaces/ws-eu",
		AADTenantID: uuid.NewString(),
		AADClientID: uuid.NewString(),
	}
}

func fixtureSubscription() *subscription.Subscription {
	return subscription.NewSubscription(testSubscriptionID, testUser, testProduct, testDeployment)
}

func testCoordinate() Coordinate {
	return Coordinate{
		ProductName:    testProduct,
		DeploymentName: testDeployment,
		VersionName:    testVersion,
		SubscriptionID: testSubscriptionID,
		UserID:         testUser,
	}
}

// resolverFixture wires a resolver whose mocks return the full happy
// path unless a test overrides them first.
type resolverFixture struct {
	products    *MockProductRepository
	deployments *MockDeploymentRepository
	versions    *MockAPIVersionRepository
	workspaces  *MockWorkspaceRepository
	resolver    *Resolver
}

func newResolverFixture() *resolverFixture {
	f := &resolverFixture{
		products:    new(MockProductRepository),
		deployments: new(MockDeploymentRepository),
		versions:    new(MockAPIVersionRepository),
		workspaces:  new(MockWorkspaceRepository),
	}
	f.resolver = NewResolver(f.products, f.deployments, f.versions, f.workspaces, zap.NewNop())
	return f
}

func (f *resolverFixture) expectHappyPath() {
	f.products.On("FindByName", mock.Anything, testProduct).Return(fixtureProduct(), nil)
	f.deployments.On("FindByName", mock.Anything, testProduct, testDeployment).Return(fixtureDeployment(), nil)
	f.versions.On("FindByName", mock.Anything, testProduct, testDeployment, testVersion).Return(fixtureVersion(), nil)
	f.workspaces.On("FindByName", mock.Anything, testWorkspace).Return(fixtureWorkspace(), nil)
}

func newTestGuard(subscriptions *MockSubscriptionRepository) *AccessGuard {
	return NewAccessGuard(subscriptions, identity.NewStaticDirectory(nil), zap.NewNop())
}
