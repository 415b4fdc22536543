package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute() Route {
	return Route{
		Legs: []RouteLeg{
			{Mode: WalkMode(), DurationMinutes: 5, ToStopName: "Stop A"},
			{Mode: BusMode(), DurationMinutes: 10, BusServiceNumber: "97"},
			{Mode: WalkMode(), DurationMinutes: 3},
		},
	}
}

func TestRouteTotalDurationMinutes(t *testing.T) {
	assert.Equal(t, 18, testRoute().TotalDurationMinutes())
}

func TestRouteValidate(t *testing.T) {
	assert.NoError(t, testRoute().Validate())

	assert.Error(t, Route{}.Validate())

	missingService := Route{
		Legs: []RouteLeg{
			{Mode: BusMode(), DurationMinutes: 10},
		},
	}
	assert.Error(t, missingService.Validate())

	negativeDuration := Route{
		Legs: []RouteLeg{
			{Mode: WalkMode(), DurationMinutes: -1},
		},
	}
	assert.Error(t, negativeDuration.Validate())
}

func TestTripSessionLegAccessors(t *testing.T) {
	session := &TripSession{
		Route:           testRoute(),
		CurrentLegIndex: 0,
		Status:          TripStatusActive,
	}

	currentLeg, ok := session.CurrentLeg()
	require.True(t, ok)
	assert.Equal(t, "Stop A", currentLeg.ToStopName)

	nextLeg, ok := session.NextLeg()
	require.True(t, ok)
	assert.Equal(t, "97", nextLeg.BusServiceNumber)

	assert.False(t, session.OnFinalLeg())

	session.CurrentLegIndex = 2
	assert.True(t, session.OnFinalLeg())

	_, ok = session.NextLeg()
	assert.False(t, ok)

	// A completed session has its index past the final leg
	session.CurrentLegIndex = len(session.Route.Legs)
	_, ok = session.CurrentLeg()
	assert.False(t, ok)
}

func TestRouteLegEndpoint(t *testing.T) {
	leg := RouteLeg{
		Mode: WalkMode(),
		Geometry: []Location{
			{Latitude: 1, Longitude: 1},
			{Latitude: 2, Longitude: 2},
		},
	}

	endpoint, ok := leg.Endpoint()
	require.True(t, ok)
	assert.Equal(t, Location{Latitude: 2, Longitude: 2}, endpoint)

	_, ok = RouteLeg{Mode: WalkMode()}.Endpoint()
	assert.False(t, ok)
}
