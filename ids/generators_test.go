package ids

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	id, err := UUIDGenerator{}.Generate()
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, "uuid", UUIDGenerator{}.Type())
}

func TestULIDGeneratorMonotonic(t *testing.T) {
	g := NewULIDGenerator()

	prev := ""
	for i := 0; i < 100; i++ {
		id, err := g.Generate()
		require.NoError(t, err)

		_, err = ulid.ParseStrict(id)
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestULIDGeneratorConcurrent(t *testing.T) {
	g := NewULIDGenerator()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]struct{})
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id, err := g.Generate()
				assert.NoError(t, err)
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 400)
}

func TestNanoIDGenerator(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		alphabet string
		wantSize int
	}{
		{"defaults", 0, "", 21},
		{"lowercase token", 8, Lowercase, 8},
		{"single letter", 5, "x", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewNanoIDGenerator(tt.size, tt.alphabet)
			id, err := g.Generate()
			require.NoError(t, err)
			assert.Len(t, id, tt.wantSize)
			assert.Equal(t, tt.wantSize, g.Size())

			alphabet := tt.alphabet
			if alphabet == "" {
				alphabet = defaultNanoAlphabet
			}
			for _, r := range id {
				assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"uuid", "ulid", "nanoid"} {
		g, ok := r.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, name, g.Type())

		id, err := r.Generate(name)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	}

	_, err := r.Generate("snowflake")
	assert.EqualError(t, err, "unknown generator type: snowflake")

	r.Register("fixed", NewNanoIDGenerator(3, "z"))
	id, err := r.Generate("fixed")
	require.NoError(t, err)
	assert.Equal(t, "zzz", id)
}

func TestDefaultRegistry(t *testing.T) {
	Register("lower4", NewNanoIDGenerator(4, Lowercase))

	g, ok := Lookup("lower4")
	require.True(t, ok)
	assert.Equal(t, "nanoid", g.Type())

	id, err := Generate("lower4")
	require.NoError(t, err)
	assert.Len(t, id, 4)
}
