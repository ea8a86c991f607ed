package llm

import (
	"context"
	"log/slog"
	"sync"
)

// Factory constructs a provider from configuration
type Factory func(ctx context.Context, config *Config) (Provider, error)

// Resolver lazily constructs and memoizes the configured provider.
// It is owned by the application container rather than held in a package global.
type Resolver struct {
	mu       sync.Mutex
	config   *Config
	factory  Factory
	provider Provider
	logger   *slog.Logger
}

// NewResolver creates a resolver for the given configuration using the built-in adapters
func NewResolver(config *Config, logger *slog.Logger) *Resolver {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{config: config, factory: NewProvider, logger: logger}
}

// NewStaticResolver wraps a pre-built provider. A nil provider resolves to absent.
func NewStaticResolver(p Provider) *Resolver {
	return &Resolver{
		provider: p,
		factory:  func(context.Context, *Config) (Provider, error) { return p, nil },
		logger:   slog.Default(),
	}
}

// WithFactory replaces the provider constructor
func (r *Resolver) WithFactory(f Factory) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factory = f
	r.provider = nil
	return r
}

// Client returns the provider, constructing it on first use.
// Missing credentials and construction failures both resolve to (nil, false);
// only a successful construction is cached.
func (r *Resolver) Client(ctx context.Context) (Provider, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.provider != nil {
		return r.provider, true
	}
	if r.factory == nil {
		return nil, false
	}
	if r.config != nil && !r.config.HasCredentials() {
		return nil, false
	}

	provider, err := r.factory(ctx, r.config)
	if err != nil {
		r.logger.Error("failed to initialize completion provider", slog.String("error", err.Error()))
		return nil, false
	}
	if provider == nil {
		return nil, false
	}
	r.provider = provider
	return provider, true
}

// Reset clears the memoized provider
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provider = nil
}

// NewProvider constructs the adapter selected by config.Provider
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	switch config.Provider {
	case ProviderGemini:
		return NewGeminiProvider(ctx, config)
	default:
		return NewOpenAIProvider(config)
	}
}
