package operation

import (
	"fmt"

	"github.com/google/uuid"
)

// SubmitExperimentName builds the experiment a new run is filed
// under. The third segment repeats the deployment name; correlation
// at read time goes through tags, not through the experiment path.
func SubmitExperimentName(productName, deploymentName string, t Type) string {
	return fmt.Sprintf("p_%s_d_%s_s_%s_%s", productName, deploymentName, deploymentName, t.ExperimentSuffix())
}

// QueryExperimentName builds the experiment path used when querying
// run history, which scopes the third segment to the subscription.
func QueryExperimentName(productName, deploymentName string, subscriptionID uuid.UUID, t Type) string {
	return fmt.Sprintf("p_%s_d_%s_s_%s_%s", productName, deploymentName, subscriptionID, t.ExperimentSuffix())
}
