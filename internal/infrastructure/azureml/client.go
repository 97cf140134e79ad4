package azureml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
	"github.com/modelserve/gateway/internal/infrastructure/cache"
	"github.com/modelserve/gateway/internal/infrastructure/identity"
	"go.uber.org/zap"
)

const managementAPIVersion = "2019-05-01"

// Client talks to the ML backend's three API families: the ARM
// management plane (workspace metadata), run history, and the model
// management registry. All calls share one injected HTTP client so
// timeouts and transport settings are set in exactly one place.
type Client struct {
	httpClient     *http.Client
	tokens         identity.TokenSource
	regions        cache.Store
	managementBase string
	serviceFormat  string
	regionTTL      time.Duration
	logger         *zap.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithManagementBase overrides the ARM base URL
func WithManagementBase(base string) ClientOption {
	return func(c *Client) {
		c.managementBase = strings.TrimRight(base, "/")
	}
}

// WithServiceFormat overrides the data-plane base URL format. The
// single %s is replaced by the workspace region.
func WithServiceFormat(format string) ClientOption {
	return func(c *Client) {
		c.serviceFormat = format
	}
}

// WithRegionTTL sets how long resolved regions are cached
func WithRegionTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.regionTTL = ttl
	}
}

// WithClientLogger sets the client's logger
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a backend client. The HTTP client must carry a
// timeout; the store caches region lookups.
func NewClient(httpClient *http.Client, tokens identity.TokenSource, regions cache.Store, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:     httpClient,
		tokens:         tokens,
		regions:        regions,
		managementBase: "https://management.azure.com",
		serviceFormat:  "https://%s.api.azureml.ms",
		regionTTL:      time.Hour,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Region resolves the workspace's region via the management plane,
// preferring the cached value. The region decides which data-plane
// host run-history and registry calls go to.
func (c *Client) Region(ctx context.Context, ws *workspace.AMLWorkspace) (string, error) {
	cacheKey := "region:" + ws.Name

	if cached, found, err := c.regions.Get(ctx, cacheKey); err == nil && found {
		return cached, nil
	} else if err != nil {
		c.logger.Warn("region cache read failed", zap.Error(err))
	}

	token, err := c.tokens.Token(ctx, ws)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s%s?api-version=%s", c.managementBase, ws.ResourceID, managementAPIVersion)
	body, err := c.do(ctx, http.MethodGet, url, token, nil)
	if err != nil {
		return "", err
	}

	var details struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal(body, &details); err != nil || details.Location == "" {
		return "", shared.NewBackendProtocolError(string(body))
	}

	if err := c.regions.Set(ctx, cacheKey, details.Location, c.regionTTL); err != nil {
		c.logger.Warn("region cache write failed", zap.Error(err))
	}

	return details.Location, nil
}

// serviceBase returns the data-plane base URL for a region
func (c *Client) serviceBase(region string) string {
	return fmt.Sprintf(c.serviceFormat, region)
}

// do issues one backend request and returns the raw body. Non-2xx
// responses become BackendError carrying the upstream payload.
func (c *Client) do(ctx context.Context, method, url, bearer string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal backend request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, shared.NewBackendError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, shared.NewBackendError(err.Error())
	}

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, shared.NewBackendError(string(body))
	}

	return body, nil
}

// unwrapValue extracts the value array from a list response
func unwrapValue(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Value == nil {
		return nil, shared.NewBackendProtocolError(string(body))
	}
	return env.Value, nil
}
