package query

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Konsultn-Engineering/bookworm/ids"
)

// ErrIDCollision is returned when the id generator keeps producing
// identifiers that are already registered.
var ErrIDCollision = errors.New("query: could not generate an unused builder id")

// Registry owns builders keyed by identifier. It is safe for concurrent
// use; the builders it hands out are not.
type Registry struct {
	mu       sync.Mutex
	builders map[string]*Builder
	ids      ids.Generator
	opts     []Option
	logger   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIDGenerator sets the generator for new builder identifiers.
func WithIDGenerator(g ids.Generator) RegistryOption {
	return func(r *Registry) { r.ids = g }
}

// WithBuilderOptions sets the options applied to every new builder.
func WithBuilderOptions(opts ...Option) RegistryOption {
	return func(r *Registry) { r.opts = append(r.opts, opts...) }
}

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an empty registry using ULID identifiers.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		builders: make(map[string]*Builder),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.ids == nil {
		r.ids = ids.NewULIDGenerator()
	}
	return r
}

// Create registers a fresh builder under a new identifier.
func (r *Registry) Create() (string, *Builder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		id, err := r.ids.Generate()
		if err != nil {
			return "", nil, fmt.Errorf("generate builder id: %w", err)
		}
		if _, exists := r.builders[id]; exists {
			continue
		}
		return id, r.add(id), nil
	}
	return "", nil, ErrIDCollision
}

// Acquire returns the builder registered under id, creating it when absent.
// An empty id always creates a builder with a generated identifier.
func (r *Registry) Acquire(id string) (*Builder, error) {
	if id == "" {
		_, b, err := r.Create()
		return b, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.builders[id]; ok {
		return b, nil
	}
	return r.add(id), nil
}

// Lookup returns the builder registered under id without creating one.
func (r *Registry) Lookup(id string) (*Builder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.builders[id]
	return b, ok
}

// Release forgets the builder registered under id.
func (r *Registry) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builders[id]; ok {
		delete(r.builders, id)
		r.logger.Debug("builder released", slog.String("id", id))
	}
}

// Len returns the number of registered builders.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.builders)
}

func (r *Registry) add(id string) *Builder {
	opts := make([]Option, 0, len(r.opts)+1)
	opts = append(opts, r.opts...)
	opts = append(opts, WithID(id))

	b := New(opts...)
	r.builders[id] = b
	r.logger.Debug("builder created", slog.String("id", id), slog.Int("registered", len(r.builders)))
	return b
}
