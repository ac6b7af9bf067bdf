// Package flashcards picks random study decks from a vocabulary list and tracks card flips
package flashcards

import (
	"math/rand"
	"sync"
	"time"

	"github.com/amiramtracker/backend/internal/models"
)

// DeckSize is the maximum number of cards shown at once
const DeckSize = 9

// Sampler draws uniform random samples without replacement.
// It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSampler creates a sampler over src. A nil src uses a time-seeded source.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Sampler{rnd: rand.New(src)}
}

// Sample returns min(k, len(words)) distinct words picked with a Fisher-Yates shuffle.
// The input slice is left untouched and every call is independent of previous ones.
func (s *Sampler) Sample(words []models.VocabWord, k int) []models.VocabWord {
	if k <= 0 || len(words) == 0 {
		return []models.VocabWord{}
	}

	shuffled := make([]models.VocabWord, len(words))
	copy(shuffled, words)

	s.mu.Lock()
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	s.mu.Unlock()

	return shuffled[:min(k, len(shuffled))]
}
