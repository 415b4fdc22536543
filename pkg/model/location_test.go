package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceToSamePoint(t *testing.T) {
	loc := Location{Latitude: 51.5074, Longitude: -0.1278}

	assert.Zero(t, loc.DistanceTo(loc))
}

func TestDistanceToKnownDistance(t *testing.T) {
	// Trafalgar Square to Piccadilly Circus, roughly 600 m apart
	trafalgar := Location{Latitude: 51.5080, Longitude: -0.1281}
	piccadilly := Location{Latitude: 51.5101, Longitude: -0.1340}

	distance := trafalgar.DistanceTo(piccadilly)

	assert.Greater(t, distance, 400.0)
	assert.Less(t, distance, 800.0)
}

func TestDistanceToSmallOffset(t *testing.T) {
	// 0.001 degrees of latitude is roughly 111 m
	a := Location{Latitude: 0, Longitude: 0}
	b := Location{Latitude: 0.001, Longitude: 0}

	distance := a.DistanceTo(b)

	assert.InDelta(t, 111.0, distance, 2.0)
}

func TestDistanceToSymmetric(t *testing.T) {
	a := Location{Latitude: 51.5080, Longitude: -0.1281}
	b := Location{Latitude: 51.5101, Longitude: -0.1340}

	assert.InDelta(t, a.DistanceTo(b), b.DistanceTo(a), 0.0001)
}
