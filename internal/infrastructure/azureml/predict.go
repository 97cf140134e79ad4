package azureml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
	"go.uber.org/zap"
)

// PredictAuth selects how a real-time scoring call authenticates.
// Key carries the resolved scoring key when Mode is Key.
type PredictAuth struct {
	Mode workspace.AuthMode
	Key  string
}

// Predict proxies the caller's body to a real-time scoring endpoint
// and returns the backend's response verbatim along with its content
// type. No correlation tags are attached; prediction is synchronous
// and leaves no backend artifact to track.
func (c *Client) Predict(ctx context.Context, ws *workspace.AMLWorkspace, endpointURL string, auth PredictAuth, input json.RawMessage) (json.RawMessage, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(input))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	switch auth.Mode {
	case workspace.AuthModeToken:
		token, err := c.tokens.Token(ctx, ws)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	case workspace.AuthModeKey:
		req.Header.Set("Authorization", "Bearer "+auth.Key)
	case workspace.AuthModeNone:
		// no credential
	default:
		return nil, "", fmt.Errorf("unsupported auth mode %q", auth.Mode)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", shared.NewBackendError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", shared.NewBackendError(err.Error())
	}

	c.logger.Debug("predict call",
		zap.String("url", endpointURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", shared.NewBackendError(string(body))
	}

	return body, resp.Header.Get("Content-Type"), nil
}
