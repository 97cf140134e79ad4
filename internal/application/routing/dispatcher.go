package routing

import (
	"context"
	"encoding/json"

	"github.com/modelserve/gateway/internal/domain/operation"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
	"github.com/modelserve/gateway/internal/infrastructure/azureml"
	"github.com/modelserve/gateway/internal/infrastructure/identity"
	"go.uber.org/zap"
)

// Backend is the slice of the execution-service client the routing
// services consume.
type Backend interface {
	SubmitRun(ctx context.Context, ws *workspace.AMLWorkspace, endpointURL string, req azureml.SubmitRequest) error
	Predict(ctx context.Context, ws *workspace.AMLWorkspace, endpointURL string, auth azureml.PredictAuth, input json.RawMessage) (json.RawMessage, string, error)
	QueryRuns(ctx context.Context, ws *workspace.AMLWorkspace, experimentName string, filter *azureml.RunFilter) ([]azureml.Run, error)
	ListModels(ctx context.Context, ws *workspace.AMLWorkspace, tags azureml.TagQuery, name string) ([]azureml.Model, error)
	ListServices(ctx context.Context, ws *workspace.AMLWorkspace, tags azureml.TagQuery, name string) ([]azureml.Service, error)
}

// Dispatcher submits operations to the backend execution service.
// Every entry point authorizes the caller, resolves the coordinate
// triple and posts to the version's configured endpoint. Submissions
// are at-most-once; a failure is surfaced to the caller unretried.
type Dispatcher struct {
	guard    *AccessGuard
	resolver *Resolver
	backend  Backend
	secrets  identity.SecretResolver
	logger   *zap.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	guard *AccessGuard,
	resolver *Resolver,
	backend Backend,
	secrets identity.SecretResolver,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		guard:    guard,
		resolver: resolver,
		backend:  backend,
		secrets:  secrets,
		logger:   logger,
	}
}

// Train submits a training run. The freshly minted identifier serves
// as both the model ID the run will register and the operation ID it
// is correlated by.
func (d *Dispatcher) Train(ctx context.Context, in DispatchInput) (*operation.Receipt, error) {
	target, err := d.admit(ctx, in.Coordinate)
	if err != nil {
		return nil, err
	}

	modelID := operation.NewID()
	tags := operation.TagSet{
		Type:           operation.TypeTraining,
		UserID:         in.UserID,
		SubscriptionID: in.SubscriptionID,
		ProductName:    in.ProductName,
		DeploymentName: in.DeploymentName,
		APIVersion:     in.VersionName,
		ModelID:        modelID,
		OperationID:    modelID,
	}
	params := d.identityParams(in.Coordinate)
	params["userInput"] = string(in.Input)
	params["modelId"] = modelID

	if err := d.submit(ctx, target, operation.TypeTraining, tags, params); err != nil {
		return nil, err
	}
	return &operation.Receipt{ModelID: modelID}, nil
}

// BatchInfer submits a batch-inference run. An empty modelID selects
// the deployment's default model; the minted operation ID is the only
// correlation handle in that case.
func (d *Dispatcher) BatchInfer(ctx context.Context, in DispatchInput, modelID string) (*operation.Receipt, error) {
	target, err := d.admit(ctx, in.Coordinate)
	if err != nil {
		return nil, err
	}

	operationID := operation.NewID()
	tags := operation.TagSet{
		Type:           operation.TypeInference,
		UserID:         in.UserID,
		SubscriptionID: in.SubscriptionID,
		ProductName:    in.ProductName,
		DeploymentName: in.DeploymentName,
		APIVersion:     in.VersionName,
		ModelID:        modelID,
		OperationID:    operationID,
	}
	params := map[string]string{
		"userInput":   string(in.Input),
		"operationId": operationID,
	}
	if modelID != "" {
		params["modelId"] = modelID
	}

	if err := d.submit(ctx, target, operation.TypeInference, tags, params); err != nil {
		return nil, err
	}
	return &operation.Receipt{OperationID: operationID}, nil
}

// Deploy submits a deployment run that publishes the given model as a
// real-time endpoint. The minted endpoint ID becomes the service name
// in the backend registry.
func (d *Dispatcher) Deploy(ctx context.Context, in DispatchInput, modelID string) (*operation.Receipt, error) {
	target, err := d.admit(ctx, in.Coordinate)
	if err != nil {
		return nil, err
	}

	endpointID := operation.NewID()
	tags := operation.TagSet{
		Type:           operation.TypeDeployment,
		UserID:         in.UserID,
		SubscriptionID: in.SubscriptionID,
		ProductName:    in.ProductName,
		DeploymentName: in.DeploymentName,
		APIVersion:     in.VersionName,
		ModelID:        modelID,
		EndpointID:     endpointID,
	}
	params := d.identityParams(in.Coordinate)
	params["userInput"] = string(in.Input)
	params["endpointId"] = endpointID
	params["modelId"] = modelID

	if err := d.submit(ctx, target, operation.TypeDeployment, tags, params); err != nil {
		return nil, err
	}
	return &operation.Receipt{EndpointID: endpointID}, nil
}

// Predict proxies one synchronous scoring call to the version's
// real-time endpoint and streams the backend response back verbatim.
func (d *Dispatcher) Predict(ctx context.Context, in DispatchInput) (json.RawMessage, string, error) {
	target, err := d.admit(ctx, in.Coordinate)
	if err != nil {
		return nil, "", err
	}

	version := target.Version
	if version.RealTimeAPI == "" {
		return nil, "", shared.NewNotFound("real-time endpoint")
	}

	auth := azureml.PredictAuth{Mode: version.AuthMode}
	if version.AuthMode == workspace.AuthModeKey {
		key, err := d.secrets.Resolve(version.KeySecretName)
		if err != nil {
			return nil, "", shared.NewAuthError(err.Error())
		}
		auth.Key = key
	}

	return d.backend.Predict(ctx, target.Workspace, version.RealTimeAPI, auth, in.Input)
}

// admit runs the guard then the resolver, in that order, so an
// unauthorized caller never triggers metadata resolution.
func (d *Dispatcher) admit(ctx context.Context, c Coordinate) (*Target, error) {
	if _, err := d.guard.Authorize(ctx, c.SubscriptionID, c.UserID); err != nil {
		return nil, err
	}
	return d.resolver.Resolve(ctx, c.ProductName, c.DeploymentName, c.VersionName)
}

func (d *Dispatcher) submit(ctx context.Context, target *Target, t operation.Type, tags operation.TagSet, params map[string]string) error {
	endpoint := target.Version.SubmitAPIFor(string(t))
	if endpoint == "" {
		return shared.NewNotFound(string(t) + " endpoint")
	}

	req := azureml.SubmitRequest{
		ExperimentName:       operation.SubmitExperimentName(target.Product.Name, target.Deployment.Name, t),
		ParameterAssignments: params,
		Tags:                 tags.Map(),
	}

	if err := d.backend.SubmitRun(ctx, target.Workspace, endpoint, req); err != nil {
		return err
	}

	d.logger.Info("operation submitted",
		zap.String("operation_type", string(t)),
		zap.String("product", target.Product.Name),
		zap.String("deployment", target.Deployment.Name),
		zap.String("subscription_id", tags.SubscriptionID.String()))
	return nil
}

// identityParams duplicates the caller identity tags into the
// pipeline parameter assignments for the kinds whose pipelines read
// them as inputs.
func (d *Dispatcher) identityParams(c Coordinate) map[string]string {
	return map[string]string{
		"userId":         c.UserID,
		"productName":    c.ProductName,
		"deploymentName": c.DeploymentName,
		"apiVersion":     c.VersionName,
		"subscriptionId": c.SubscriptionID.String(),
	}
}
