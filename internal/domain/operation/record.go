package operation

import "encoding/json"

// Record is the caller-facing view of one backend artifact: a
// pipeline run, a registered model or a deployed endpoint. Exactly
// one of the ID fields is set, matching the operation family. Times
// are passed through as the backend reports them.
type Record struct {
	ModelID         string          `json:"modelId,omitempty"`
	OperationID     string          `json:"operationId,omitempty"`
	EndpointID      string          `json:"endpointId,omitempty"`
	OperationType   string          `json:"operationType,omitempty"`
	Status          string          `json:"status,omitempty"`
	StartTimeUtc    string          `json:"startTimeUtc,omitempty"`
	CompleteTimeUtc string          `json:"completeTimeUtc,omitempty"`
	ScoringURL      string          `json:"scoringUrl,omitempty"`
	Description     string          `json:"description,omitempty"`
	Error           json.RawMessage `json:"error,omitempty"`
}

// Receipt is returned to the caller right after an asynchronous
// operation is accepted by the backend.
type Receipt struct {
	ModelID     string `json:"modelId,omitempty"`
	OperationID string `json:"operationId,omitempty"`
	EndpointID  string `json:"endpointId,omitempty"`
}
