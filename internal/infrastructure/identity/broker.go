package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
	"github.com/modelserve/gateway/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// managementScope is the OAuth scope for ARM and the ML control plane.
const managementScope = "https://management.azure.com/.default"

// TokenSource yields a bearer token valid for the given workspace's
// service principal.
type TokenSource interface {
	Token(ctx context.Context, ws *workspace.AMLWorkspace) (string, error)
}

// AADTokenBroker acquires tokens via the client-credentials grant and
// caches them until shortly before expiry.
type AADTokenBroker struct {
	httpClient  *http.Client
	loginBase   string
	cache       cache.Store
	secrets     SecretResolver
	refreshSkew time.Duration
	logger      *zap.Logger
}

// BrokerOption configures an AADTokenBroker
type BrokerOption func(*AADTokenBroker)

// WithBrokerLogger sets the broker's logger
func WithBrokerLogger(logger *zap.Logger) BrokerOption {
	return func(b *AADTokenBroker) {
		b.logger = logger
	}
}

// WithRefreshSkew renews cached tokens this long before they expire
func WithRefreshSkew(skew time.Duration) BrokerOption {
	return func(b *AADTokenBroker) {
		b.refreshSkew = skew
	}
}

// NewAADTokenBroker creates a broker. The HTTP client must carry a
// timeout; loginBase is the AAD authority, e.g.
// "https://login.microsoftonline.com".
func NewAADTokenBroker(httpClient *http.Client, loginBase string, store cache.Store, secrets SecretResolver, opts ...BrokerOption) *AADTokenBroker {
	b := &AADTokenBroker{
		httpClient:  httpClient,
		loginBase:   strings.TrimRight(loginBase, "/"),
		cache:       store,
		secrets:     secrets,
		refreshSkew: 5 * time.Minute,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Token returns a bearer token for the workspace's service principal,
// reusing the cached one when it has not entered the refresh window.
func (b *AADTokenBroker) Token(ctx context.Context, ws *workspace.AMLWorkspace) (string, error) {
	cacheKey := "token:" + ws.AADTenantID + ":" + ws.AADClientID

	if cached, found, err := b.cache.Get(ctx, cacheKey); err == nil && found {
		return cached, nil
	} else if err != nil {
		b.logger.Warn("token cache read failed", zap.Error(err))
	}

	secret, err := b.secrets.Resolve(ws.ClientSecretName)
	if err != nil {
		return "", shared.NewAuthError(err.Error())
	}

	token, ttl, err := b.acquire(ctx, ws.AADTenantID, ws.AADClientID, secret)
	if err != nil {
		return "", err
	}

	if ttl > 0 {
		if err := b.cache.Set(ctx, cacheKey, token, ttl); err != nil {
			b.logger.Warn("token cache write failed", zap.Error(err))
		}
	}

	return token, nil
}

func (b *AADTokenBroker) acquire(ctx context.Context, tenantID, clientID, secret string) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", clientID)
	form.Set("client_secret", secret)
	form.Set("scope", managementScope)

	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", b.loginBase, tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", 0, shared.NewAuthError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, shared.NewAuthError(err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		b.logger.Warn("token acquisition rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("tenant_id", tenantID),
		)
		return "", 0, shared.NewAuthError(string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return "", 0, shared.NewAuthError(string(body))
	}

	return tr.AccessToken, b.cacheTTL(tr), nil
}

// cacheTTL derives how long the token may be reused. The exp claim is
// authoritative when the token parses as a JWT; expires_in is the
// fallback for opaque tokens.
func (b *AADTokenBroker) cacheTTL(tr tokenResponse) time.Duration {
	lifetime := time.Duration(tr.ExpiresIn) * time.Second

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tr.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			lifetime = time.Until(exp.Time)
		}
	}

	ttl := lifetime - b.refreshSkew
	if ttl < 0 {
		return 0
	}
	return ttl
}

var _ TokenSource = (*AADTokenBroker)(nil)
