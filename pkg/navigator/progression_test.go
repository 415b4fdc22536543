package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wayfarer-app/wayfarer/pkg/model"
)

var (
	stopAPoint = model.Location{Latitude: 1.3000, Longitude: 103.8000}
	homePoint  = model.Location{Latitude: 1.3100, Longitude: 103.8100}
)

// nearTo is ~22 m from the point, wellAwayFrom is ~1.5 km away.
func nearTo(point model.Location) model.LocationFix {
	return model.LocationFix{Location: model.Location{
		Latitude:  point.Latitude + 0.0002,
		Longitude: point.Longitude,
	}}
}

func wellAwayFrom(point model.Location) model.LocationFix {
	return model.LocationFix{Location: model.Location{
		Latitude:  point.Latitude + 0.0135,
		Longitude: point.Longitude,
	}}
}

func activeSession() *model.TripSession {
	return &model.TripSession{
		PrimaryIdentifier: "WAYFARER:TRIP:user-1:1",
		UserID:            "user-1",
		Status:            model.TripStatusActive,
		Route: model.Route{
			Legs: []model.RouteLeg{
				{
					Mode:       model.WalkMode(),
					ToStopName: "Stop A",
					Geometry:   []model.Location{{Latitude: 1.3050, Longitude: 103.8050}, stopAPoint},
				},
				{
					Mode:             model.BusMode(),
					DurationMinutes:  10,
					BusServiceNumber: "97",
					FromStopName:     "Stop A",
				},
				{
					Mode:            model.WalkMode(),
					DurationMinutes: 3,
					Geometry:        []model.Location{homePoint},
				},
			},
		},
	}
}

func TestEvaluateFixFarAway(t *testing.T) {
	session := activeSession()

	for i := 0; i < 10; i++ {
		assert.Equal(t, decisionNone, evaluateFix(session, wellAwayFrom(stopAPoint)))
	}
	assert.Equal(t, 0, session.CurrentLegIndex)
}

func TestEvaluateFixWithinThresholdAdvances(t *testing.T) {
	session := activeSession()

	assert.Equal(t, decisionAdvance, evaluateFix(session, nearTo(stopAPoint)))
}

func TestEvaluateFixExactlyOneAdvancePerFix(t *testing.T) {
	// Put the endpoints of legs 0 and 2 at the same place. A fix near both
	// must still only advance one leg.
	session := activeSession()
	session.Route.Legs[2].Geometry = []model.Location{stopAPoint}

	assert.Equal(t, decisionAdvance, evaluateFix(session, nearTo(stopAPoint)))
}

func TestEvaluateFixLegWithoutGeometry(t *testing.T) {
	session := activeSession()
	session.CurrentLegIndex = 1 // bus leg, no geometry

	assert.Equal(t, decisionNone, evaluateFix(session, nearTo(stopAPoint)))
	assert.Equal(t, decisionNone, evaluateFix(session, nearTo(homePoint)))
}

func TestEvaluateFixFinalLegCompletes(t *testing.T) {
	session := activeSession()
	session.CurrentLegIndex = 2

	assert.Equal(t, decisionComplete, evaluateFix(session, nearTo(homePoint)))
}

func TestEvaluateFixIgnoresInactiveSessions(t *testing.T) {
	session := activeSession()
	session.Status = model.TripStatusPreview

	assert.Equal(t, decisionNone, evaluateFix(session, nearTo(stopAPoint)))

	session.Status = model.TripStatusCompleted
	session.CurrentLegIndex = len(session.Route.Legs)

	assert.Equal(t, decisionNone, evaluateFix(session, nearTo(homePoint)))

	assert.Equal(t, decisionNone, evaluateFix(nil, nearTo(stopAPoint)))
}
