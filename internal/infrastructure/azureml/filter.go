package azureml

import (
	"strings"

	"github.com/google/uuid"
	"github.com/modelserve/gateway/internal/domain/operation"
)

// RunFilter builds the conjunction expression for runs:query. Clause
// order is fixed: run type first, then operation type, then the
// caller scope, then any narrowing ID clause.
type RunFilter struct {
	clauses []string
}

// NewRunFilter starts a filter scoped to pipeline runs of one
// operation type.
func NewRunFilter(opType operation.Type) *RunFilter {
	return &RunFilter{
		clauses: []string{
			"runType eq azureml.PipelineRun",
			"tags/operationType eq " + string(opType),
		},
	}
}

// ForCaller scopes the filter to one user and subscription. Every
// correlator query carries this pair; it is what keeps tenants from
// seeing each other's runs.
func (f *RunFilter) ForCaller(userID string, subscriptionID uuid.UUID) *RunFilter {
	f.clauses = append(f.clauses,
		"tags/userId eq "+userID,
		"tags/subscriptionId eq "+subscriptionID.String(),
	)
	return f
}

// WithTag appends a narrowing clause, turning a list query into a
// get-by-id query.
func (f *RunFilter) WithTag(key, value string) *RunFilter {
	f.clauses = append(f.clauses, "tags/"+key+" eq "+value)
	return f
}

// String renders the filter expression
func (f *RunFilter) String() string {
	return strings.Join(f.clauses, " and ")
}

// TagQuery selects registry artifacts (models, services) by their
// correlation tags. Rendered as the comma-joined tags= query value.
type TagQuery struct {
	UserID         string
	ProductName    string
	DeploymentName string
	SubscriptionID uuid.UUID
}

// Encode renders the tags= parameter value
func (q TagQuery) Encode() string {
	pairs := []string{
		"userId=" + q.UserID,
		"productName=" + q.ProductName,
		"deploymentName=" + q.DeploymentName,
		"subscriptionId=" + q.SubscriptionID.String(),
	}
	return strings.Join(pairs, ",")
}
