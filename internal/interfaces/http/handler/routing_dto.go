package handler

import "encoding/json"

// dispatchRequest is the body every submission endpoint accepts. The
// input payload is forwarded to the backend verbatim.
type dispatchRequest struct {
	SubscriptionID string          `json:"subscriptionId" binding:"required,uuid"`
	UserID         string          `json:"userId" binding:"required"`
	Input          json.RawMessage `json:"input"`
}

// coordinateURI binds the product/deployment path segments
type coordinateURI struct {
	Product    string `uri:"product" binding:"required"`
	Deployment string `uri:"deployment" binding:"required"`
}

// modelURI adds the model path segment to the coordinates
type modelURI struct {
	Product    string `uri:"product" binding:"required"`
	Deployment string `uri:"deployment" binding:"required"`
	ModelID    string `uri:"modelId" binding:"required,opid"`
}

// subscriptionURI scopes a query route to one subscription
type subscriptionURI struct {
	Product        string `uri:"product" binding:"required"`
	Deployment     string `uri:"deployment" binding:"required"`
	SubscriptionID string `uri:"subscriptionId" binding:"required,uuid"`
}

// artifactURI narrows a query route to one backend artifact
type artifactURI struct {
	Product        string `uri:"product" binding:"required"`
	Deployment     string `uri:"deployment" binding:"required"`
	SubscriptionID string `uri:"subscriptionId" binding:"required,uuid"`
	ArtifactID     string `uri:"artifactId" binding:"required,opid"`
}

// versionQuery selects the API version on every route
type versionQuery struct {
	APIVersion string `form:"api-version" binding:"required"`
}

// callerQuery carries the caller identity on query routes
type callerQuery struct {
	APIVersion string `form:"api-version" binding:"required"`
	UserID     string `form:"userid" binding:"required"`
}
