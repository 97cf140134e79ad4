// Package integration wires the full gateway stack against an
// in-memory database and stubbed backend services. Each test gets its
// own database, so they are safe to run in parallel.
package integration

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/modelserve/gateway/internal/domain/catalog"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/subscription"
	"github.com/modelserve/gateway/internal/domain/workspace"
)

// NewTestDB opens a fresh in-memory database with the gateway schema
// applied.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and
	// shared across the whole test
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&catalog.Deployment{},
		&catalog.APIVersion{},
		&workspace.AMLWorkspace{},
		&subscription.Subscription{},
	))

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// Fixture is one fully provisioned routing coordinate: a product with
// a deployment, an API version bound to a workspace, and an active
// subscription for the owner.
type Fixture struct {
	Product        *catalog.Product
	Deployment     *catalog.Deployment
	Version        *catalog.APIVersion
	Workspace      *workspace.AMLWorkspace
	Subscription   *subscription.Subscription
	SubscriptionID uuid.UUID
	Owner          string
}

// FixtureConfig carries the endpoint URLs the version routes to.
// Empty URLs leave the corresponding operation unoffered.
type FixtureConfig struct {
	TrainAPI          string
	BatchInferenceAPI string
	DeployAPI         string
	RealTimeAPI       string
	AuthMode          workspace.AuthMode
	KeySecretName     string
	ResourceID        string
}

// SeedFixture writes one complete coordinate into the database.
func SeedFixture(t *testing.T, db *gorm.DB, cfg FixtureConfig) *Fixture {
	t.Helper()

	if cfg.AuthMode == "" {
		cfg.AuthMode = workspace.AuthModeToken
	}
	if cfg.ResourceID == "" {
		cfg.ResourceID = "/subscriptions/00000000-0000-0000-0000-000000000001" +
			"/resourceGroups/ml-rg/providers/Microsoft.MachineLearningServices/workspaces/ws-e2e"
	}

	product, err := catalog.NewProduct("sentiment", "owner@modelserve.io", catalog.ProductTypeTrainYourOwnModel)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	deployment, err := catalog.NewDeployment("sentiment", "eu")
	require.NoError(t, err)
	require.NoError(t, db.Create(deployment).Error)

	ws := &workspace.AMLWorkspace{
		BaseEntity:       shared.NewBaseEntity(),
		Name:             "ws-e2e",
		ResourceID:       cfg.ResourceID,
		AADTenantID:      "11111111-1111-1111-1111-111111111111",
		AADClientID:      "22222222-2222-2222-2222-222222222222",
		ClientSecretName: "ws-e2e-secret",
	}
	require.NoError(t, db.Create(ws).Error)

	version := &catalog.APIVersion{
		BaseEntity:        shared.NewBaseEntity(),
		ProductName:       "sentiment",
		DeploymentName:    "eu",
		Name:              "v1",
		WorkspaceName:     "ws-e2e",
		AuthMode:          cfg.AuthMode,
		TrainAPI:          cfg.TrainAPI,
		BatchInferenceAPI: cfg.BatchInferenceAPI,
		DeployAPI:         cfg.DeployAPI,
		RealTimeAPI:       cfg.RealTimeAPI,
		KeySecretName:     cfg.KeySecretName,
	}
	require.NoError(t, db.Create(version).Error)

	owner := "alice@example.com"
	sub := subscription.NewSubscription(uuid.New(), owner, "sentiment", "eu")
	require.NoError(t, db.Create(sub).Error)

	return &Fixture{
		Product:        product,
		Deployment:     deployment,
		Version:        version,
		Workspace:      ws,
		Subscription:   sub,
		SubscriptionID: sub.ID,
		Owner:          owner,
	}
}
