package flashcards

import (
	"sync"
	"time"
)

// Store keeps the current deck of every user in memory
type Store struct {
	mu    sync.Mutex
	decks map[int]*Deck
}

// NewStore creates an empty deck store
func NewStore() *Store {
	return &Store{
		decks: make(map[int]*Deck),
	}
}

// Get returns the deck of a user, if any
func (s *Store) Get(userID int) (*Deck, bool) {
	s.mu.Lock()
	deck, ok := s.decks[userID]
	s.mu.Unlock()
	if ok {
		deck.touch()
	}
	return deck, ok
}

// Set replaces the deck of a user
func (s *Store) Set(userID int, deck *Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[userID] = deck
}

// Delete drops the deck of a user
func (s *Store) Delete(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decks, userID)
}

// EvictIdle removes decks untouched for longer than ttl and returns how many were removed
func (s *Store) EvictIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, deck := range s.decks {
		if deck.lastTouched().Before(cutoff) {
			delete(s.decks, userID)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored decks
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decks)
}
