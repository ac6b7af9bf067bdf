package models

import "time"

// VocabWord represents an English word with its Hebrew translation
type VocabWord struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	EnglishWord string    `json:"englishWord"`
	HebrewWord  string    `json:"hebrewWord"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateVocabWordRequest represents a request to add a word.
// Both fields are trimmed before validation.
type CreateVocabWordRequest struct {
	EnglishWord string `json:"englishWord" validate:"required,max=255"`
	HebrewWord  string `json:"hebrewWord" validate:"required,max=255"`
}

// ImportResult summarizes a bulk vocabulary import
type ImportResult struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}
