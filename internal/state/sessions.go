package state

import (
	"sync"

	"github.com/kidandcat/diametrics/internal/model"
)

// Sessions maps session tokens to their stores.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewSessions() *Sessions {
	return &Sessions{stores: map[string]*Store{}}
}

// Get returns the store of token, creating a fresh one on first use.
func (s *Sessions) Get(token, username string, today model.Day) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[token]
	if !ok {
		st = New(username, today)
		s.stores[token] = st
	}
	return st
}

// Drop discards the store of token, resetting every cached collection and
// view setting.
func (s *Sessions) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, token)
}

// Retain drops every store whose token keep rejects and reports how many
// were dropped.
func (s *Sessions) Retain(keep func(token string) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for token := range s.stores {
		if !keep(token) {
			delete(s.stores, token)
			n++
		}
	}
	return n
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}
