package model

import (
	"math"
	"time"
)

const earthRadiusMetres = 6371000.0

type Location struct {
	Latitude  float64 `json:"latitude" groups:"basic"`
	Longitude float64 `json:"longitude" groups:"basic"`
}

// DistanceTo returns the great-circle distance between two points in metres.
func (l Location) DistanceTo(other Location) float64 {
	dLat := degToRad(other.Latitude - l.Latitude)
	dLon := degToRad(other.Longitude - l.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(l.Latitude))*math.Cos(degToRad(other.Latitude))*sinLon*sinLon

	return 2 * earthRadiusMetres * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// LocationFix is a single positioning sample from a device.
type LocationFix struct {
	Location Location

	AccuracyMetres float64
	Timestamp      time.Time
}
