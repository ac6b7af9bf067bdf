// Package scheduler runs periodic housekeeping jobs
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// TokenPurger deletes refresh tokens past their lifetime
type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int, error)
}

// DeckEvictor removes flashcard decks untouched for longer than ttl
type DeckEvictor interface {
	EvictIdle(ttl time.Duration) int
}

// jobTimeout bounds a single purge run
const jobTimeout = time.Minute

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	tokens    TokenPurger
	decks     DeckEvictor
	interval  time.Duration
	deckTTL   time.Duration
	logger    *zap.Logger
}

// New creates a new scheduler instance
func New(tokens TokenPurger, decks DeckEvictor, interval, deckTTL time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		tokens:    tokens,
		decks:     decks,
		interval:  interval,
		deckTTL:   deckTTL,
		logger:    logger,
	}
}

// Start registers the jobs and runs them in the background
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.purgeExpiredTokens); err != nil {
		return err
	}
	if _, err := s.scheduler.Every(s.interval).Do(s.evictIdleDecks); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", zap.Duration("interval", s.interval), zap.Duration("deckTTL", s.deckTTL))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := s.tokens.PurgeExpiredTokens(ctx)
	if err != nil {
		s.logger.Error("failed to purge expired refresh tokens", zap.Error(err))
		return
	}
	if count > 0 {
		s.logger.Info("purged expired refresh tokens", zap.Int("count", count))
	}
}

func (s *Scheduler) evictIdleDecks() {
	if count := s.decks.EvictIdle(s.deckTTL); count > 0 {
		s.logger.Info("evicted idle flashcard decks", zap.Int("count", count))
	}
}
