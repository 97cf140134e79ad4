package azureml

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
)

// SubmitRun posts a pipeline submission to an operation-kind-specific
// endpoint URL configured on the API version. The backend acknowledges
// asynchronously; the correlation ID inside the request tags is the
// only handle the caller gets back.
func (c *Client) SubmitRun(ctx context.Context, ws *workspace.AMLWorkspace, endpointURL string, req SubmitRequest) error {
	token, err := c.tokens.Token(ctx, ws)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodPost, endpointURL, token, req)
	return err
}

// QueryRuns posts a tag filter to the run-history query endpoint of
// one experiment and returns the matching runs.
func (c *Client) QueryRuns(ctx context.Context, ws *workspace.AMLWorkspace, experimentName string, filter *RunFilter) ([]Run, error) {
	region, err := c.Region(ctx, ws)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.Token(ctx, ws)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/history/v1.0%s/experiments/%s/runs:query",
		c.serviceBase(region), ws.ResourceID, experimentName)

	body, err := c.do(ctx, http.MethodPost, url, token, map[string]string{"filter": filter.String()})
	if err != nil {
		return nil, err
	}

	value, err := unwrapValue(body)
	if err != nil {
		return nil, err
	}

	var runs []Run
	if err := json.Unmarshal(value, &runs); err != nil {
		return nil, shared.NewBackendProtocolError(string(body))
	}
	return runs, nil
}
