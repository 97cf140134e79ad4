package routing

import (
	"context"

	"github.com/modelserve/gateway/internal/domain/operation"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/infrastructure/azureml"
	"go.uber.org/zap"
)

// Correlator reconstructs operation status from the backend's run
// history and registries. The gateway stores nothing about in-flight
// operations; listing and getting are one algorithm differentiated
// only by how narrow the tag filter is.
type Correlator struct {
	guard    *AccessGuard
	resolver *Resolver
	backend  Backend
	logger   *zap.Logger
}

// NewCorrelator creates a new correlator
func NewCorrelator(
	guard *AccessGuard,
	resolver *Resolver,
	backend Backend,
	logger *zap.Logger,
) *Correlator {
	return &Correlator{
		guard:    guard,
		resolver: resolver,
		backend:  backend,
		logger:   logger,
	}
}

// ListOperations returns every operation of the given type the caller
// has submitted under the subscription.
func (c *Correlator) ListOperations(ctx context.Context, coord Coordinate, t operation.Type) ([]operation.Record, error) {
	return c.queryRuns(ctx, coord, t, "")
}

// GetOperation returns the operations matching one specific
// identifier. The backend may report several runs for one identifier
// (retried pipelines), so the result stays a list.
func (c *Correlator) GetOperation(ctx context.Context, coord Coordinate, t operation.Type, id string) ([]operation.Record, error) {
	return c.queryRuns(ctx, coord, t, id)
}

// ListModels returns the models registered for the caller under the
// subscription, newest registration last.
func (c *Correlator) ListModels(ctx context.Context, coord Coordinate) ([]operation.Record, error) {
	return c.queryModels(ctx, coord, "")
}

// GetModel returns the registered model with the given identifier.
func (c *Correlator) GetModel(ctx context.Context, coord Coordinate, modelID string) (*operation.Record, error) {
	models, err := c.queryModels(ctx, coord, modelID)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, shared.NewNotFound("model")
	}
	return &models[0], nil
}

// ListEndpoints returns the deployed real-time endpoints for the
// caller under the subscription.
func (c *Correlator) ListEndpoints(ctx context.Context, coord Coordinate) ([]operation.Record, error) {
	return c.queryEndpoints(ctx, coord, "")
}

// GetEndpoint returns the deployed endpoint with the given
// identifier, including its scoring URL.
func (c *Correlator) GetEndpoint(ctx context.Context, coord Coordinate, endpointID string) (*operation.Record, error) {
	endpoints, err := c.queryEndpoints(ctx, coord, endpointID)
	if err != nil {
		return nil, err
	}
	if len(endpoints) == 0 {
		return nil, shared.NewNotFound("endpoint")
	}
	return &endpoints[0], nil
}

func (c *Correlator) queryRuns(ctx context.Context, coord Coordinate, t operation.Type, id string) ([]operation.Record, error) {
	target, err := c.admit(ctx, coord)
	if err != nil {
		return nil, err
	}

	filter := azureml.NewRunFilter(t).ForCaller(coord.UserID, coord.SubscriptionID)
	if id != "" {
		filter = filter.WithTag(t.IDTag(), id)
	}

	experiment := operation.QueryExperimentName(target.Product.Name, target.Deployment.Name, coord.SubscriptionID, t)
	runs, err := c.backend.QueryRuns(ctx, target.Workspace, experiment, filter)
	if err != nil {
		return nil, err
	}

	records := make([]operation.Record, 0, len(runs))
	for _, run := range runs {
		records = append(records, projectRun(run, t))
	}
	return records, nil
}

func (c *Correlator) queryModels(ctx context.Context, coord Coordinate, modelID string) ([]operation.Record, error) {
	target, err := c.admit(ctx, coord)
	if err != nil {
		return nil, err
	}

	models, err := c.backend.ListModels(ctx, target.Workspace, c.tagQuery(coord), modelID)
	if err != nil {
		return nil, err
	}

	records := make([]operation.Record, 0, len(models))
	for _, model := range models {
		records = append(records, operation.Record{
			ModelID:         model.Name,
			StartTimeUtc:    model.CreatedTime,
			CompleteTimeUtc: model.ModifiedTime,
			Description:     model.Description,
		})
	}
	return records, nil
}

func (c *Correlator) queryEndpoints(ctx context.Context, coord Coordinate, endpointID string) ([]operation.Record, error) {
	target, err := c.admit(ctx, coord)
	if err != nil {
		return nil, err
	}

	services, err := c.backend.ListServices(ctx, target.Workspace, c.tagQuery(coord), endpointID)
	if err != nil {
		return nil, err
	}

	records := make([]operation.Record, 0, len(services))
	for _, service := range services {
		records = append(records, operation.Record{
			EndpointID:      service.Name,
			Status:          service.State,
			StartTimeUtc:    service.CreatedTime,
			CompleteTimeUtc: service.UpdatedTime,
			ScoringURL:      service.ScoringURI,
			Description:     service.Description,
		})
	}
	return records, nil
}

func (c *Correlator) admit(ctx context.Context, coord Coordinate) (*Target, error) {
	if _, err := c.guard.Authorize(ctx, coord.SubscriptionID, coord.UserID); err != nil {
		return nil, err
	}
	return c.resolver.Resolve(ctx, coord.ProductName, coord.DeploymentName, coord.VersionName)
}

func (c *Correlator) tagQuery(coord Coordinate) azureml.TagQuery {
	return azureml.TagQuery{
		UserID:         coord.UserID,
		ProductName:    coord.ProductName,
		DeploymentName: coord.DeploymentName,
		SubscriptionID: coord.SubscriptionID,
	}
}

// projectRun maps one run-history record into the uniform caller
// shape: the identifier relevant to the operation family from the
// tags, backend timestamps renamed into the start/complete pair.
func projectRun(run azureml.Run, t operation.Type) operation.Record {
	record := operation.Record{
		OperationType:   run.Tags["operationType"],
		Status:          run.Status,
		StartTimeUtc:    run.StartTimeUtc,
		CompleteTimeUtc: run.EndTimeUtc,
		Description:     run.Description,
		Error:           run.Error,
	}
	switch t {
	case operation.TypeTraining:
		record.ModelID = run.Tags["modelId"]
	case operation.TypeInference:
		record.OperationID = run.Tags["operationId"]
	case operation.TypeDeployment:
		record.EndpointID = run.Tags["endpointId"]
	}
	return record
}
