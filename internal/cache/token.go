package cache

import "sync"

// Token marks one cache invalidation generation. Entries subscribe to the
// token that was live when they were created; tripping the source marks
// every such entry stale at once.
type Token struct {
	done chan struct{}
}

// Tripped reports whether the token's generation has been invalidated.
func (t *Token) Tripped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done exposes the trip signal for select-based consumers.
func (t *Token) Done() <-chan struct{} { return t.done }

// TokenSource hands out the live invalidation token and replaces it on
// trip. Safe for concurrent use: readers observe either the pre-trip or
// the post-trip token, never a half-replaced state.
type TokenSource struct {
	mu  sync.Mutex
	cur *Token
}

// NewTokenSource creates a source with a fresh live token.
func NewTokenSource() *TokenSource {
	return &TokenSource{cur: newToken()}
}

func newToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Current returns the live token.
func (s *TokenSource) Current() *Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Trip invalidates the live token and installs a fresh one. At most one
// trip takes effect per generation; tripping an already-tripped token is a
// no-op that leaves the newly issued token untouched.
func (s *TokenSource) Trip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur.Tripped() {
		return
	}
	close(s.cur.done)
	s.cur = newToken()
}
