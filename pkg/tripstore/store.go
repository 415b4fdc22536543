// Package tripstore persists trip sessions and their leg-by-leg progress.
package tripstore

import (
	"context"

	"github.com/wayfarer-app/wayfarer/pkg/model"
)

type Store interface {
	// StartTrip persists a new Active trip and returns it with its
	// authoritative identifier assigned.
	StartTrip(ctx context.Context, session *model.TripSession) (*model.TripSession, error)

	UpdateProgress(ctx context.Context, tripID string, legIndex int) (*model.TripSession, error)

	CompleteTrip(ctx context.Context, tripID string) error

	// GetActiveTrip returns the user's Active trip, or nil when none exists.
	GetActiveTrip(ctx context.Context, userID string) (*model.TripSession, error)
}
