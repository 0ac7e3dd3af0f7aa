package cart

import "sync"

// Store keeps one cart engine per session id. Access is serialized through
// Do so handlers never touch an engine concurrently.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Engine
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Engine)}
}

// Do runs fn against the session's engine, creating an empty cart on first
// use. The engine must not escape fn.
func (s *Store) Do(sessionID string, fn func(*Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.carts[sessionID]
	if !ok {
		engine = NewEngine()
		s.carts[sessionID] = engine
	}
	return fn(engine)
}

// Drop discards the session's cart entirely.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Sessions returns the number of live carts, used by readiness reporting.
func (s *Store) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
