// Package navigator tracks a user's multi-leg trip, advancing it as they
// near each leg's endpoint and watching bus arrivals for the leg ahead.
package navigator

// Mode is the navigation state governing a user's session.
type Mode string

const (
	// ModeNoTrip means there is nothing to track.
	ModeNoTrip Mode = "NoTrip"

	// ModePreviewOnly means a candidate route exists but navigation has not
	// been started. Proximity tracking is disabled.
	ModePreviewOnly Mode = "PreviewOnly"

	// ModeActiveTrip means a persisted Active trip is being tracked.
	ModeActiveTrip Mode = "ActiveTrip"

	// ModeConflictPending means a new preview route arrived while a trip was
	// already Active. The caller must resolve the conflict; nothing is
	// decided automatically.
	ModeConflictPending Mode = "ConflictPending"
)
