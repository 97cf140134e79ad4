package operation

import "github.com/google/uuid"

// TagSet is the full set of correlation tags stamped onto a backend
// run at submission time. The gateway keeps no operation state of its
// own; these tags are the only record linking a run back to the user,
// subscription and coordinates that produced it.
type TagSet struct {
	Type           Type
	UserID         string
	SubscriptionID uuid.UUID
	ProductName    string
	DeploymentName string
	APIVersion     string

	// ModelID is the model consumed (inference, deployment) or
	// produced (training) by the run.
	ModelID string
	// OperationID is the run's own correlation ID for training and
	// inference operations.
	OperationID string
	// EndpointID is the correlation ID for deployment operations.
	EndpointID string
}

// Map renders the tag set as the flat string map the backend accepts.
// Empty ID fields are omitted.
func (s TagSet) Map() map[string]string {
	tags := map[string]string{
		"userId":         s.UserID,
		"productName":    s.ProductName,
		"deploymentName": s.DeploymentName,
		"apiVersion":     s.APIVersion,
		"operationType":  string(s.Type),
		"subscriptionId": s.SubscriptionID.String(),
	}
	if s.ModelID != "" {
		tags["modelId"] = s.ModelID
	}
	if s.OperationID != "" {
		tags["operationId"] = s.OperationID
	}
	if s.EndpointID != "" {
		tags["endpointId"] = s.EndpointID
	}
	return tags
}
