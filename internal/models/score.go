package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Score bounds accepted on creation
const (
	MinScore = 50
	MaxScore = 150
)

// DateLayout is the calendar date format used by score requests
const DateLayout = "2006-01-02"

// Score represents a single test result taken on a calendar date
type Score struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Date      time.Time `json:"date" example:"2025-04-02"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateScoreRequest represents a request to log a new score
type CreateScoreRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Score int    `json:"score" validate:"min=50,max=150"`
}

type scoreJSON struct {
	ID        int       `json:"id"`
	Date      string    `json:"date"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarshalJSON writes Date as a calendar date in DateLayout, the same format requests use
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(scoreJSON{
		ID:        s.ID,
		Date:      s.Date.Format(DateLayout),
		Score:     s.Score,
		CreatedAt: s.CreatedAt,
	})
}

// UnmarshalJSON reads a Score written by MarshalJSON
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw scoreJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := time.ParseInLocation(DateLayout, raw.Date, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid score date %q: %w", raw.Date, err)
	}

	*s = Score{
		ID:        raw.ID,
		Date:      date,
		Score:     raw.Score,
		CreatedAt: raw.CreatedAt,
	}
	return nil
}
