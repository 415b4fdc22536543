package tripstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarer-app/wayfarer/pkg/model"
)

type stubStore struct {
	mu sync.Mutex

	updateErr   error
	completeErr error

	// failuresBeforeSuccess makes the first N calls fail, then succeed.
	failuresBeforeSuccess int

	updates     []int
	completions []string
}

func (s *stubStore) StartTrip(ctx context.Context, session *model.TripSession) (*model.TripSession, error) {
	return session, nil
}

func (s *stubStore) UpdateProgress(ctx context.Context, tripID string, legIndex int) (*model.TripSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failuresBeforeSuccess > 0 {
		s.failuresBeforeSuccess--
		return nil, errors.New("transient write failure")
	}

	if s.updateErr != nil {
		return nil, s.updateErr
	}

	s.updates = append(s.updates, legIndex)

	return nil, nil
}

func (s *stubStore) CompleteTrip(ctx context.Context, tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completeErr != nil {
		return s.completeErr
	}

	s.completions = append(s.completions, tripID)

	return nil
}

func (s *stubStore) GetActiveTrip(ctx context.Context, userID string) (*model.TripSession, error) {
	return nil, nil
}

func newTestSyncer(store Store) (*ProgressSyncer, chan SyncOutcome) {
	outcomes := make(chan SyncOutcome, 1)

	syncer := NewProgressSyncer(store)
	syncer.NewBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 3)
	}
	syncer.OnOutcome = func(outcome SyncOutcome) { outcomes <- outcome }

	return syncer, outcomes
}

func waitForOutcome(t *testing.T, outcomes chan SyncOutcome) SyncOutcome {
	t.Helper()

	select {
	case outcome := <-outcomes:
		return outcome
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sync outcome")
		return SyncOutcome{}
	}
}

func TestSyncProgressSuccess(t *testing.T) {
	store := &stubStore{}
	syncer, outcomes := newTestSyncer(store)

	syncer.SyncProgress("WAYFARER:TRIP:user-1:1", 2)

	outcome := waitForOutcome(t, outcomes)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, "WAYFARER:TRIP:user-1:1", outcome.TripID)
	assert.Equal(t, 2, outcome.LegIndex)
	assert.False(t, outcome.Completed)

	assert.Equal(t, []int{2}, store.updates)
}

func TestSyncProgressRetriesTransientFailures(t *testing.T) {
	store := &stubStore{failuresBeforeSuccess: 2}
	syncer, outcomes := newTestSyncer(store)

	syncer.SyncProgress("WAYFARER:TRIP:user-1:1", 1)

	outcome := waitForOutcome(t, outcomes)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, []int{1}, store.updates)
}

func TestSyncProgressReportsExhaustedRetries(t *testing.T) {
	store := &stubStore{updateErr: errors.New("database offline")}
	syncer, outcomes := newTestSyncer(store)

	syncer.SyncProgress("WAYFARER:TRIP:user-1:1", 1)

	outcome := waitForOutcome(t, outcomes)
	require.Error(t, outcome.Err)
	assert.Equal(t, 1, outcome.LegIndex)
	assert.Empty(t, store.updates)
}

func TestSyncCompletion(t *testing.T) {
	store := &stubStore{}
	syncer, outcomes := newTestSyncer(store)

	syncer.SyncCompletion("WAYFARER:TRIP:user-1:1")

	outcome := waitForOutcome(t, outcomes)
	assert.NoError(t, outcome.Err)
	assert.True(t, outcome.Completed)

	assert.Equal(t, []string{"WAYFARER:TRIP:user-1:1"}, store.completions)
}

func TestSyncCompletionFailure(t *testing.T) {
	store := &stubStore{completeErr: errors.New("database offline")}
	syncer, outcomes := newTestSyncer(store)

	syncer.SyncCompletion("WAYFARER:TRIP:user-1:1")

	outcome := waitForOutcome(t, outcomes)
	require.Error(t, outcome.Err)
	assert.True(t, outcome.Completed)
}
