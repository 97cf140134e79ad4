package identity

import (
	"fmt"
	"os"
	"strings"
)

// SecretResolver turns a stored secret name into the secret value.
// Workspace rows never hold credentials directly, only names.
type SecretResolver interface {
	Resolve(name string) (string, error)
}

// EnvSecretResolver resolves secret names from the process
// environment. A name like "ws-eu-secret" is read from
// MLGW_SECRET_WS_EU_SECRET.
type EnvSecretResolver struct {
	prefix string
}

// NewEnvSecretResolver creates a resolver with the default prefix
func NewEnvSecretResolver() *EnvSecretResolver {
	return &EnvSecretResolver{prefix: "MLGW_SECRET_"}
}

// Resolve looks up the secret value in the environment
func (r *EnvSecretResolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("secret name is empty")
	}
	key := r.prefix + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", fmt.Errorf("secret %q not found in environment (%s)", name, key)
	}
	return value, nil
}

var _ SecretResolver = (*EnvSecretResolver)(nil)
