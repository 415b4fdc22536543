package navigator

import "github.com/wayfarer-app/wayfarer/pkg/model"

// ProximityThresholdMetres is how close a fix must be to the current leg's
// endpoint before the trip advances.
const ProximityThresholdMetres = 50.0

type progressionDecision int

const (
	decisionNone progressionDecision = iota
	decisionAdvance
	decisionComplete
)

// evaluateFix decides whether a location fix moves the trip forward. At most
// one advancement per fix, however close the fix is to later leg endpoints.
// Legs without geometry never advance by proximity; they wait for a manual
// advance.
func evaluateFix(session *model.TripSession, fix model.LocationFix) progressionDecision {
	if session == nil || session.Status != model.TripStatusActive {
		return decisionNone
	}

	currentLeg, ok := session.CurrentLeg()
	if !ok {
		return decisionNone
	}

	endpoint, ok := currentLeg.Endpoint()
	if !ok {
		return decisionNone
	}

	if fix.Location.DistanceTo(endpoint) > ProximityThresholdMetres {
		return decisionNone
	}

	if session.OnFinalLeg() {
		return decisionComplete
	}

	return decisionAdvance
}
