package navigator

import (
	"errors"
	"sync"
	"time"

	"github.com/wayfarer-app/wayfarer/pkg/model"
)

// LocationSource delivers periodic location fixes while started.
type LocationSource interface {
	// Start begins delivery at roughly the given interval and returns the
	// fix stream. The stream is closed by Stop.
	Start(interval time.Duration) (<-chan model.LocationFix, error)

	// Stop ends delivery and closes the stream. Safe to call repeatedly.
	Stop()
}

// PushLocationSource adapts an externally pushed fix feed (HTTP ingest or the
// location queue) to the LocationSource contract. Fixes offered while the
// source is stopped are dropped, so nothing is delivered for a session that
// has ended. The interval is advisory only; the device controls its own
// reporting rate.
type PushLocationSource struct {
	mu sync.Mutex
	ch chan model.LocationFix
}

func NewPushLocationSource() *PushLocationSource {
	return &PushLocationSource{}
}

func (s *PushLocationSource) Start(interval time.Duration) (<-chan model.LocationFix, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		return nil, errors.New("location source already started")
	}

	s.ch = make(chan model.LocationFix, 16)

	return s.ch, nil
}

func (s *PushLocationSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
}

// Offer feeds one fix into the stream, dropping it when the source is
// stopped or the consumer is backlogged.
func (s *PushLocationSource) Offer(fix model.LocationFix) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil {
		return
	}

	select {
	case s.ch <- fix:
	default:
	}
}
