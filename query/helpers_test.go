package query

import (
	"fmt"
	"sync"
)

// sequence yields tokaa, tokab, ... so rendered SQL is predictable.
type sequence struct {
	mu sync.Mutex
	n  int
}

func (s *sequence) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("tok%c%c", 'a'+rune(s.n/26%26), 'a'+rune(s.n%26))
	s.n++
	return id, nil
}

func (s *sequence) Type() string { return "sequence" }

type fixed string

func (f fixed) Generate() (string, error) { return string(f), nil }
func (f fixed) Type() string              { return "fixed" }

func newTestBuilder(opts ...Option) *Builder {
	return New(append([]Option{WithTokenGenerator(&sequence{})}, opts...)...)
}
