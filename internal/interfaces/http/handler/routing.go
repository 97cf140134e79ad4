package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/modelserve/gateway/internal/application/routing"
	"github.com/modelserve/gateway/internal/domain/operation"
)

// Dispatcher submits work to the ML backend on behalf of a caller
type Dispatcher interface {
	Predict(ctx context.Context, in routing.DispatchInput) (json.RawMessage, string, error)
	Train(ctx context.Context, in routing.DispatchInput) (*operation.Receipt, error)
	BatchInfer(ctx context.Context, in routing.DispatchInput, modelID string) (*operation.Receipt, error)
	Deploy(ctx context.Context, in routing.DispatchInput, modelID string) (*operation.Receipt, error)
}

// Correlator reconstructs operation and artifact state from the backend
type Correlator interface {
	ListOperations(ctx context.Context, coord routing.Coordinate, t operation.Type) ([]operation.Record, error)
	GetOperation(ctx context.Context, coord routing.Coordinate, t operation.Type, id string) ([]operation.Record, error)
	ListModels(ctx context.Context, coord routing.Coordinate) ([]operation.Record, error)
	GetModel(ctx context.Context, coord routing.Coordinate, modelID string) (*operation.Record, error)
	ListEndpoints(ctx context.Context, coord routing.Coordinate) ([]operation.Record, error)
	GetEndpoint(ctx context.Context, coord routing.Coordinate, endpointID string) (*operation.Record, error)
}

// RoutingHandler exposes the gateway's ML surface: synchronous
// prediction, asynchronous submissions and operation/artifact queries,
// all addressed by product/deployment coordinates.
type RoutingHandler struct {
	BaseHandler
	dispatcher Dispatcher
	correlator Correlator
}

// NewRoutingHandler creates a new RoutingHandler
func NewRoutingHandler(dispatcher Dispatcher, correlator Correlator) *RoutingHandler {
	return &RoutingHandler{
		dispatcher: dispatcher,
		correlator: correlator,
	}
}

// RegisterRoutes registers the routing endpoints
func (h *RoutingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	deployments := rg.Group("/products/:product/deployments/:deployment")
	{
		deployments.POST("/predict", h.Predict)
		deployments.POST("/train", h.Train)
		deployments.POST("/batchinference", h.BatchInfer)
		deployments.POST("/models/:modelId/batchinference", h.BatchInferModel)
		deployments.POST("/models/:modelId/deploy", h.Deploy)

		subscriptions := deployments.Group("/subscriptions/:subscriptionId")
		{
			subscriptions.GET("/operations/training", h.ListTrainingOperations)
			subscriptions.GET("/operations/training/:artifactId", h.GetTrainingOperation)
			subscriptions.GET("/operations/inference", h.ListInferenceOperations)
			// the upstream consumer posts its listing requests
			subscriptions.POST("/operations/inference", h.ListInferenceOperations)
			subscriptions.GET("/operations/inference/:artifactId", h.GetInferenceOperation)
			subscriptions.GET("/operations/deployment", h.ListDeploymentOperations)
			subscriptions.GET("/operations/deployment/:artifactId", h.GetDeploymentOperation)
			subscriptions.GET("/models", h.ListModels)
			subscriptions.GET("/models/:artifactId", h.GetModel)
			subscriptions.GET("/endpoints", h.ListEndpoints)
			subscriptions.GET("/endpoints/:artifactId", h.GetEndpoint)
		}
	}
}

// Predict proxies one synchronous scoring request and streams the
// backend response back with its original content type.
func (h *RoutingHandler) Predict(c *gin.Context) {
	input, ok := h.bindDispatch(c)
	if !ok {
		return
	}

	body, contentType, err := h.dispatcher.Predict(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(http.StatusOK, contentType, body)
}

// Train submits a training job and returns the minted model ID
func (h *RoutingHandler) Train(c *gin.Context) {
	input, ok := h.bindDispatch(c)
	if !ok {
		return
	}

	receipt, err := h.dispatcher.Train(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, receipt)
}

// BatchInfer submits a batch inference job against the deployment's
// default model.
func (h *RoutingHandler) BatchInfer(c *gin.Context) {
	input, ok := h.bindDispatch(c)
	if !ok {
		return
	}

	receipt, err := h.dispatcher.BatchInfer(c.Request.Context(), input, "")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, receipt)
}

// BatchInferModel submits a batch inference job against a specific
// trained model.
func (h *RoutingHandler) BatchInferModel(c *gin.Context) {
	var uri modelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input, ok := h.bindDispatch(c)
	if !ok {
		return
	}

	receipt, err := h.dispatcher.BatchInfer(c.Request.Context(), input, uri.ModelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, receipt)
}

// Deploy publishes a trained model as a real-time endpoint
func (h *RoutingHandler) Deploy(c *gin.Context) {
	var uri modelURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input, ok := h.bindDispatch(c)
	if !ok {
		return
	}

	receipt, err := h.dispatcher.Deploy(c.Request.Context(), input, uri.ModelID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, receipt)
}

// ListTrainingOperations lists the caller's training operations
func (h *RoutingHandler) ListTrainingOperations(c *gin.Context) {
	h.listOperations(c, operation.TypeTraining)
}

// GetTrainingOperation returns the training operations for one model ID
func (h *RoutingHandler) GetTrainingOperation(c *gin.Context) {
	h.getOperation(c, operation.TypeTraining)
}

// ListInferenceOperations lists the caller's batch inference operations
func (h *RoutingHandler) ListInferenceOperations(c *gin.Context) {
	h.listOperations(c, operation.TypeInference)
}

// GetInferenceOperation returns the inference operations for one
// operation ID.
func (h *RoutingHandler) GetInferenceOperation(c *gin.Context) {
	h.getOperation(c, operation.TypeInference)
}

// ListDeploymentOperations lists the caller's deployment operations
func (h *RoutingHandler) ListDeploymentOperations(c *gin.Context) {
	h.listOperations(c, operation.TypeDeployment)
}

// GetDeploymentOperation returns the deployment operations for one
// endpoint ID.
func (h *RoutingHandler) GetDeploymentOperation(c *gin.Context) {
	h.getOperation(c, operation.TypeDeployment)
}

// ListModels lists the caller's registered models
func (h *RoutingHandler) ListModels(c *gin.Context) {
	coord, ok := h.bindQuery(c)
	if !ok {
		return
	}

	records, err := h.correlator.ListModels(c.Request.Context(), coord)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// GetModel returns one registered model
func (h *RoutingHandler) GetModel(c *gin.Context) {
	coord, artifactID, ok := h.bindArtifactQuery(c)
	if !ok {
		return
	}

	record, err := h.correlator.GetModel(c.Request.Context(), coord, artifactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// ListEndpoints lists the caller's deployed real-time endpoints
func (h *RoutingHandler) ListEndpoints(c *gin.Context) {
	coord, ok := h.bindQuery(c)
	if !ok {
		return
	}

	records, err := h.correlator.ListEndpoints(c.Request.Context(), coord)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// GetEndpoint returns one deployed endpoint with its scoring URL
func (h *RoutingHandler) GetEndpoint(c *gin.Context) {
	coord, artifactID, ok := h.bindArtifactQuery(c)
	if !ok {
		return
	}

	record, err := h.correlator.GetEndpoint(c.Request.Context(), coord, artifactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

func (h *RoutingHandler) listOperations(c *gin.Context, t operation.Type) {
	coord, ok := h.bindQuery(c)
	if !ok {
		return
	}

	records, err := h.correlator.ListOperations(c.Request.Context(), coord, t)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

func (h *RoutingHandler) getOperation(c *gin.Context, t operation.Type) {
	coord, artifactID, ok := h.bindArtifactQuery(c)
	if !ok {
		return
	}

	records, err := h.correlator.GetOperation(c.Request.Context(), coord, t, artifactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// bindDispatch assembles a dispatch input from the path, the
// api-version query and the request body.
func (h *RoutingHandler) bindDispatch(c *gin.Context) (routing.DispatchInput, bool) {
	var uri coordinateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return routing.DispatchInput{}, false
	}

	var query versionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return routing.DispatchInput{}, false
	}

	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return routing.DispatchInput{}, false
	}

	subscriptionID, err := uuid.Parse(req.SubscriptionID)
	if err != nil {
		h.BadRequest(c, "subscriptionId must be a valid UUID")
		return routing.DispatchInput{}, false
	}

	return routing.DispatchInput{
		Coordinate: routing.Coordinate{
			ProductName:    uri.Product,
			DeploymentName: uri.Deployment,
			VersionName:    query.APIVersion,
			SubscriptionID: subscriptionID,
			UserID:         req.UserID,
		},
		Input: req.Input,
	}, true
}

// bindQuery assembles a query coordinate from the path and the
// api-version/userid query parameters.
func (h *RoutingHandler) bindQuery(c *gin.Context) (routing.Coordinate, bool) {
	var uri subscriptionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return routing.Coordinate{}, false
	}

	var query callerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return routing.Coordinate{}, false
	}

	return routing.Coordinate{
		ProductName:    uri.Product,
		DeploymentName: uri.Deployment,
		VersionName:    query.APIVersion,
		SubscriptionID: uuid.MustParse(uri.SubscriptionID),
		UserID:         query.UserID,
	}, true
}

func (h *RoutingHandler) bindArtifactQuery(c *gin.Context) (routing.Coordinate, string, bool) {
	var uri artifactURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err.Error())
		return routing.Coordinate{}, "", false
	}

	var query callerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return routing.Coordinate{}, "", false
	}

	return routing.Coordinate{
		ProductName:    uri.Product,
		DeploymentName: uri.Deployment,
		VersionName:    query.APIVersion,
		SubscriptionID: uuid.MustParse(uri.SubscriptionID),
		UserID:         query.UserID,
	}, uri.ArtifactID, true
}
