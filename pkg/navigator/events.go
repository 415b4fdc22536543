package navigator

import "github.com/wayfarer-app/wayfarer/pkg/model"

// Events are the callbacks the UI layer reacts to. They are invoked from the
// session coordinator goroutine with a deep copy of the session, and must not
// call back into the coordinator.
type Events struct {
	AdvancedToLeg func(session *model.TripSession, newLegIndex int)

	Completed func(session *model.TripSession)

	ConflictDetected func(existing *model.TripSession)
}
