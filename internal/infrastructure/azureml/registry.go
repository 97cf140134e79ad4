package azureml

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
)

// ListModels returns the registered models matching the tag query,
// optionally narrowed to one model name.
func (c *Client) ListModels(ctx context.Context, ws *workspace.AMLWorkspace, tags TagQuery, name string) ([]Model, error) {
	body, err := c.queryRegistry(ctx, ws, "models", tags, name)
	if err != nil {
		return nil, err
	}

	value, err := unwrapValue(body)
	if err != nil {
		return nil, err
	}

	var models []Model
	if err := json.Unmarshal(value, &models); err != nil {
		return nil, shared.NewBackendProtocolError(string(body))
	}
	return models, nil
}

// ListServices returns the deployed real-time endpoints matching the
// tag query, optionally narrowed to one endpoint name.
func (c *Client) ListServices(ctx context.Context, ws *workspace.AMLWorkspace, tags TagQuery, name string) ([]Service, error) {
	body, err := c.queryRegistry(ctx, ws, "services", tags, name)
	if err != nil {
		return nil, err
	}

	value, err := unwrapValue(body)
	if err != nil {
		return nil, err
	}

	var services []Service
	if err := json.Unmarshal(value, &services); err != nil {
		return nil, shared.NewBackendProtocolError(string(body))
	}
	return services, nil
}

func (c *Client) queryRegistry(ctx context.Context, ws *workspace.AMLWorkspace, kind string, tags TagQuery, name string) ([]byte, error) {
	region, err := c.Region(ctx, ws)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.Token(ctx, ws)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("tags", tags.Encode())
	if name != "" {
		query.Set("name", name)
	}

	endpoint := fmt.Sprintf("%s/modelmanagement/v1.0%s/%s?%s",
		c.serviceBase(region), ws.ResourceID, kind, query.Encode())

	return c.do(ctx, http.MethodGet, endpoint, token, nil)
}
