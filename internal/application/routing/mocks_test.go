package routing

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/modelserve/gateway/internal/domain/catalog"
	"github.com/modelserve/gateway/internal/domain/subscription"
	"github.com/modelserve/gateway/internal/domain/workspace"
	"github.com/modelserve/gateway/internal/infrastructure/azureml"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) FindByName(ctx context.Context, productName, name string) (*catalog.Deployment, error) {
	args := m.Called(ctx, productName, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) FindByProduct(ctx context.Context, productName string) ([]catalog.Deployment, error) {
	args := m.Called(ctx, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) Save(ctx context.Context, deployment *catalog.Deployment) error {
	return m.Called(ctx, deployment).Error(0)
}

func (m *MockDeploymentRepository) Delete(ctx context.Context, productName, name string) error {
	return m.Called(ctx, productName, name).Error(0)
}

// MockAPIVersionRepository is a mock implementation of APIVersionRepository
type MockAPIVersionRepository struct {
	mock.Mock
}

func (m *MockAPIVersionRepository) FindByName(ctx context.Context, productName, deploymentName, name string) (*catalog.APIVersion, error) {
	args := m.Called(ctx, productName, deploymentName, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.APIVersion), args.Error(1)
}

func (m *MockAPIVersionRepository) FindByDeployment(ctx context.Context, productName, deploymentName string) ([]catalog.APIVersion, error) {
	args := m.Called(ctx, productName, deploymentName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.APIVersion), args.Error(1)
}

func (m *MockAPIVersionRepository) Save(ctx context.Context, version *catalog.APIVersion) error {
	return m.Called(ctx, version).Error(0)
}

func (m *MockAPIVersionRepository) Delete(ctx context.Context, productName, deploymentName, name string) error {
	return m.Called(ctx, productName, deploymentName, name).Error(0)
}

// MockWorkspaceRepository is a mock implementation of workspace.Repository
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindByName(ctx context.Context, name string) (*workspace.AMLWorkspace, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.AMLWorkspace), args.Error(1)
}

func (m *MockWorkspaceRepository) Save(ctx context.Context, ws *workspace.AMLWorkspace) error {
	return m.Called(ctx, ws).Error(0)
}

func (m *MockWorkspaceRepository) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByOwner(ctx context.Context, owner string) ([]subscription.Subscription, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockBackend is a mock implementation of Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) SubmitRun(ctx context.Context, ws *workspace.AMLWorkspace, endpointURL string, req azureml.SubmitRequest) error {
	return m.Called(ctx, ws, endpointURL, req).Error(0)
}

func (m *MockBackend) Predict(ctx context.Context, ws *workspace.AMLWorkspace, endpointURL string, auth azureml.PredictAuth, input json.RawMessage) (json.RawMessage, string, error) {
	args := m.Called(ctx, ws, endpointURL, auth, input)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(json.RawMessage), args.String(1), args.Error(2)
}

func (m *MockBackend) QueryRuns(ctx context.Context, ws *workspace.AMLWorkspace, experimentName string, filter *azureml.RunFilter) ([]azureml.Run, error) {
	args := m.Called(ctx, ws, experimentName, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]azureml.Run), args.Error(1)
}

func (m *MockBackend) ListModels(ctx context.Context, ws *workspace.AMLWorkspace, tags azureml.TagQuery, name string) ([]azureml.Model, error) {
	args := m.Called(ctx, ws, tags, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]azureml.Model), args.Error(1)
}

func (m *MockBackend) ListServices(ctx context.Context, ws *workspace.AMLWorkspace, tags azureml.TagQuery, name string) ([]azureml.Service, error) {
	args := m.Called(ctx, ws, tags, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]azureml.Service), args.Error(1)
}
