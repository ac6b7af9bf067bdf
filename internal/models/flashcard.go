package models

// FlashcardResponse is a single sampled card with its flip state
type FlashcardResponse struct {
	WordID      int    `json:"wordId"`
	EnglishWord string `json:"englishWord"`
	HebrewWord  string `json:"hebrewWord"`
	Revealed    bool   `json:"revealed"`
}

// DeckResponse is the current flashcard sample of a user
type DeckResponse struct {
	TotalWords int                 `json:"totalWords"`
	Cards      []FlashcardResponse `json:"cards"`
}

// FlipResponse reports the new state of a toggled card
type FlipResponse struct {
	WordID   int  `json:"wordId"`
	Revealed bool `json:"revealed"`
}
