// Package ids provides the identifier generators used for builder
// identities and placeholder tokens.
package ids

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator produces string identifiers.
type Generator interface {
	Generate() (string, error)
	Type() string
}

// UUIDGenerator generates UUID v4 values
type UUIDGenerator struct{}

func (g UUIDGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id.String(), nil
}

func (g UUIDGenerator) Type() string {
	return "uuid"
}

// ULIDGenerator generates monotonic ULID values. Safe for concurrent use.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ULIDGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

func (g *ULIDGenerator) Type() string {
	return "ulid"
}

// Lowercase is the alphabet used for placeholder tokens.
const Lowercase = "abcdefghijklmnopqrstuvwxyz"

const defaultNanoAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NanoIDGenerator generates random strings of a fixed size over an alphabet.
type NanoIDGenerator struct {
	size     int
	alphabet string
}

func NewNanoIDGenerator(size int, alphabet string) *NanoIDGenerator {
	if size <= 0 {
		size = 21
	}
	if alphabet == "" {
		alphabet = defaultNanoAlphabet
	}
	return &NanoIDGenerator{size: size, alphabet: alphabet}
}

func (g *NanoIDGenerator) Generate() (string, error) {
	bytes := make([]byte, g.size)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	id := make([]byte, g.size)
	for i := 0; i < g.size; i++ {
		id[i] = g.alphabet[int(bytes[i])%len(g.alphabet)]
	}

	return string(id), nil
}

func (g *NanoIDGenerator) Type() string {
	return "nanoid"
}

// Size returns the length of generated ids.
func (g *NanoIDGenerator) Size() int {
	return g.size
}

// Registry maps generator names to generators.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

var defaultRegistry = NewRegistry()

// NewRegistry returns a registry preloaded with uuid, ulid and nanoid.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}

	r.Register("uuid", UUIDGenerator{})
	r.Register("ulid", NewULIDGenerator())
	r.Register("nanoid", NewNanoIDGenerator(21, ""))

	return r
}

func (r *Registry) Register(name string, g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[name] = g
}

func (r *Registry) Get(name string) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[name]
	return g, ok
}

func (r *Registry) Generate(name string) (string, error) {
	g, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown generator type: %s", name)
	}
	return g.Generate()
}

// Register adds a generator to the default registry.
func Register(name string, g Generator) {
	defaultRegistry.Register(name, g)
}

// Lookup finds a generator in the default registry.
func Lookup(name string) (Generator, bool) {
	return defaultRegistry.Get(name)
}

// Generate produces an id from a generator in the default registry.
func Generate(name string) (string, error) {
	return defaultRegistry.Generate(name)
}
