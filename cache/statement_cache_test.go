package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("SELECT 1;"), Fingerprint("SELECT 1;"))
	assert.NotEqual(t, Fingerprint("SELECT 1;"), Fingerprint("SELECT 2;"))
	assert.NotEqual(t, Key("mysql", "SELECT 1;"), Key("postgres", "SELECT 1;"))
	assert.NotEqual(t, Mix64(1, 2), Mix64(2, 1))
}

func TestGetSet(t *testing.T) {
	c := NewStatementCache(4)

	_, err := c.Get(1)
	assert.ErrorIs(t, err, ErrNotFound)

	c.Set(1, &CachedQuery{SQL: "SELECT ?", Tokens: []string{":abcd"}})
	q, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT ?", q.SQL)

	st := c.Stats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
	assert.Equal(t, 1, st.Len)
}

func TestEviction(t *testing.T) {
	c := NewStatementCache(2)
	for i := uint64(0); i < 5; i++ {
		c.Set(i, &CachedQuery{})
	}

	st := c.Stats()
	assert.Equal(t, 2, st.Len)
	assert.Equal(t, uint64(3), st.Evictions)

	c.Purge()
	assert.Equal(t, 0, c.Stats().Len)
}

func TestDefaultSize(t *testing.T) {
	c := NewStatementCache(0)
	for i := uint64(0); i < DefaultSize+1; i++ {
		c.Set(i, &CachedQuery{})
	}
	assert.Equal(t, DefaultSize, c.Stats().Len)
}

func TestGetOrCompile(t *testing.T) {
	c := NewStatementCache(8)

	var calls atomic.Int32
	compile := func() (*CachedQuery, error) {
		calls.Add(1)
		return &CachedQuery{SQL: "SELECT $1"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := c.GetOrCompile(42, compile)
			assert.NoError(t, err)
			assert.Equal(t, "SELECT $1", q.SQL)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetOrCompileError(t *testing.T) {
	c := NewStatementCache(8)
	boom := errors.New("boom")

	_, err := c.GetOrCompile(7, func() (*CachedQuery, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	_, err = c.Get(7)
	assert.ErrorIs(t, err, ErrNotFound)
}
