package tripstore

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// SyncOutcome reports how a best-effort remote write ended up. Local trip
// state has already moved on by the time this is produced, so a failure here
// means local and remote state have diverged.
type SyncOutcome struct {
	TripID    string
	LegIndex  int
	Completed bool

	Err error
}

// ProgressSyncer pushes optimistic local progress to the Store in the
// background. Writes are retried with exponential backoff and never block or
// roll back the caller.
type ProgressSyncer struct {
	Store Store

	// OnOutcome, when set, receives the final result of every sync attempt.
	OnOutcome func(SyncOutcome)

	// NewBackOff lets tests swap the retry policy.
	NewBackOff func() backoff.BackOff
}

func NewProgressSyncer(store Store) *ProgressSyncer {
	return &ProgressSyncer{
		Store: store,
		NewBackOff: func() backoff.BackOff {
			retryBackoff := backoff.NewExponentialBackOff()
			retryBackoff.MaxElapsedTime = 2 * time.Minute

			return retryBackoff
		},
	}
}

// SyncProgress records a leg advancement remotely. Fire-and-forget.
func (s *ProgressSyncer) SyncProgress(tripID string, legIndex int) {
	go func() {
		err := backoff.Retry(func() error {
			_, err := s.Store.UpdateProgress(context.Background(), tripID, legIndex)

			return err
		}, s.NewBackOff())

		if err != nil {
			log.Error().Err(err).Str("trip", tripID).Int("legindex", legIndex).Msg("Failed to sync trip progress")
		}

		s.report(SyncOutcome{TripID: tripID, LegIndex: legIndex, Err: err})
	}()
}

// SyncCompletion records a trip completion remotely. Fire-and-forget.
func (s *ProgressSyncer) SyncCompletion(tripID string) {
	go func() {
		err := backoff.Retry(func() error {
			return s.Store.CompleteTrip(context.Background(), tripID)
		}, s.NewBackOff())

		if err != nil {
			log.Error().Err(err).Str("trip", tripID).Msg("Failed to sync trip completion")
		}

		s.report(SyncOutcome{TripID: tripID, Completed: true, Err: err})
	}()
}

func (s *ProgressSyncer) report(outcome SyncOutcome) {
	if s.OnOutcome != nil {
		s.OnOutcome(outcome)
	}
}
