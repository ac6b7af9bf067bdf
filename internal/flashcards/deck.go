package flashcards

import (
	"errors"
	"sync"
	"time"

	"github.com/amiramtracker/backend/internal/models"
)

// ErrCardNotInDeck is returned when flipping a word that was not sampled
var ErrCardNotInDeck = errors.New("card is not in the current deck")

// Deck is a drawn sample of words together with their flip state.
// A new deck always starts with every card showing its English side.
type Deck struct {
	mu         sync.Mutex
	cards      []models.VocabWord
	revealed   map[int]bool
	totalWords int
	touchedAt  time.Time
}

// NewDeck creates an unrevealed deck from sampled cards drawn out of totalWords words
func NewDeck(cards []models.VocabWord, totalWords int) *Deck {
	return &Deck{
		cards:      cards,
		revealed:   make(map[int]bool, len(cards)),
		totalWords: totalWords,
		touchedAt:  time.Now(),
	}
}

// Toggle flips a single card and returns its new state
func (d *Deck) Toggle(wordID int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.contains(wordID) {
		return false, ErrCardNotInDeck
	}
	d.revealed[wordID] = !d.revealed[wordID]
	d.touchedAt = time.Now()
	return d.revealed[wordID], nil
}

// IsRevealed reports whether the Hebrew side of a card is shown
func (d *Deck) IsRevealed(wordID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revealed[wordID]
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Snapshot returns the deck as an API response
func (d *Deck) Snapshot() models.DeckResponse {
	d.mu.Lock()
	defer d.mu.Unlock()

	cards := make([]models.FlashcardResponse, 0, len(d.cards))
	for _, w := range d.cards {
		cards = append(cards, models.FlashcardResponse{
			WordID:      w.ID,
			EnglishWord: w.EnglishWord,
			HebrewWord:  w.HebrewWord,
			Revealed:    d.revealed[w.ID],
		})
	}
	return models.DeckResponse{TotalWords: d.totalWords, Cards: cards}
}

func (d *Deck) touch() {
	d.mu.Lock()
	d.touchedAt = time.Now()
	d.mu.Unlock()
}

func (d *Deck) lastTouched() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.touchedAt
}

func (d *Deck) contains(wordID int) bool {
	for _, w := range d.cards {
		if w.ID == wordID {
			return true
		}
	}
	return false
}
