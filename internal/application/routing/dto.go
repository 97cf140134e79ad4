package routing

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Coordinate names the product/deployment/version triple a request is
// addressed to, plus the subscription and caller identity every
// endpoint requires.
type Coordinate struct {
	ProductName    string
	DeploymentName string
	VersionName    string
	SubscriptionID uuid.UUID
	UserID         string
}

// DispatchInput carries one asynchronous submission or synchronous
// prediction. Input is forwarded to the backend verbatim.
type DispatchInput struct {
	Coordinate
	Input json.RawMessage
}
