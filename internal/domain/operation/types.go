package operation

// Type identifies the family of an asynchronous backend operation.
// The value is written verbatim into the operationType tag on every
// submitted run and echoed back in status filters, so it must stay
// stable across releases.
type Type string

const (
	TypeTraining   Type = "training"
	TypeInference  Type = "inference"
	TypeDeployment Type = "deployment"
)

// IDTag returns the tag key the operation's correlation ID is stored
// under on the backend run.
func (t Type) IDTag() string {
	switch t {
	case TypeTraining:
		return "modelId"
	case TypeDeployment:
		return "endpointId"
	default:
		return "operationId"
	}
}

// ExperimentSuffix returns the trailing segment of the experiment
// name runs of this type are submitted under. Batch inference shares
// the train experiment.
func (t Type) ExperimentSuffix() string {
	if t == TypeDeployment {
		return "deploy"
	}
	return "train"
}
