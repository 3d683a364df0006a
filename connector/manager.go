package connector

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"
)

var globalManager = NewManager()

// Manager maps driver names to providers.
type Manager struct {
	providers map[string]Provider
	mu        sync.RWMutex
	logger    *slog.Logger
}

func NewManager() *Manager {
	return &Manager{
		providers: make(map[string]Provider),
		logger:    slog.Default(),
	}
}

// SetLogger replaces the manager logger.
func (m *Manager) SetLogger(l *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = l
}

func (m *Manager) Register(name string, provider Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[name] = provider
}

func (m *Manager) Provider(name string) (Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not registered", name)
	}
	return p, nil
}

// Providers returns the registered names in sorted order.
func (m *Manager) Providers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := lo.Keys(m.providers)
	sort.Strings(names)
	return names
}

// Open connects through the named provider. ConnectTimeout bounds the whole
// attempt, retries included; Retry enables exponential backoff.
func (m *Manager) Open(ctx context.Context, name string, cfg Config) (Connection, error) {
	p, err := m.Provider(name)
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	m.mu.RLock()
	logger := m.logger
	m.mu.RUnlock()

	connect := func(ctx context.Context) (Connection, error) {
		return p.Connect(ctx, cfg)
	}

	if cfg.Retry == nil {
		conn, err := connect(ctx)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", name, err)
		}
		return conn, nil
	}

	conn, err := retryConnect(ctx, *cfg.Retry, connect, func(attempt int, err error) {
		logger.Warn("connection attempt failed",
			slog.String("provider", name),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s after %d attempts: %w", name, cfg.Retry.MaxRetries, err)
	}
	return conn, nil
}

// Register adds a provider to the default manager.
func Register(name string, provider Provider) {
	globalManager.Register(name, provider)
}

// Open connects through a provider of the default manager.
func Open(ctx context.Context, name string, cfg Config) (Connection, error) {
	return globalManager.Open(ctx, name, cfg)
}

// Providers lists the providers of the default manager.
func Providers() []string {
	return globalManager.Providers()
}

// SetLogger sets the logger of the default manager.
func SetLogger(l *slog.Logger) {
	globalManager.SetLogger(l)
}
