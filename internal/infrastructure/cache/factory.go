package cache

import (
	"fmt"

	"github.com/modelserve/gateway/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreFactory creates cache stores based on configuration
type StoreFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// store when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates a store per the configured driver. With the
// redis driver it tries Redis first and, when fallback is allowed,
// degrades to the in-memory store so a Redis outage does not take
// the gateway down with it.
func (f *StoreFactory) CreateStore() (Store, error) {
	if f.cacheConfig.Driver != "redis" {
		f.logger.Info("using in-memory cache store")
		return NewMemoryStore(), nil
	}

	store, err := NewRedisStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis cache store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache store. "+
		"Cached tokens and regions will not be shared across instances.",
		zap.Error(err),
	)
	return NewMemoryStore(), nil
}
