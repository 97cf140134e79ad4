package azureml

import "encoding/json"

// envelope is the wrapper every backend list API nests results under.
// A response without the value key is malformed, whatever its status.
type envelope struct {
	Value json.RawMessage `json:"value"`
}

// Run is the run-history record shape consumed by the correlator.
type Run struct {
	RunID        string            `json:"runId"`
	Status       string            `json:"status"`
	StartTimeUtc string            `json:"startTimeUtc"`
	EndTimeUtc   string            `json:"endTimeUtc"`
	Description  string            `json:"description"`
	Error        json.RawMessage   `json:"error"`
	Tags         map[string]string `json:"tags"`
}

// Model is the model-registry record shape.
type Model struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CreatedTime  string `json:"createdTime"`
	ModifiedTime string `json:"modifiedTime"`
}

// Service is the deployed real-time endpoint record shape. The
// registry reports updatedTime where models report modifiedTime.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	State       string `json:"state"`
	CreatedTime string `json:"createdTime"`
	UpdatedTime string `json:"updatedTime"`
	ScoringURI  string `json:"scoringUri"`
}

// SubmitRequest is the payload for a pipeline-endpoint submission.
type SubmitRequest struct {
	ExperimentName       string            `json:"experimentName"`
	ParameterAssignments map[string]string `json:"parameterAssignments"`
	Tags                 map[string]string `json:"tags"`
}
