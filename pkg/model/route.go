package model

import "errors"

// RouteLeg is one contiguous segment of a planned route. Legs are immutable
// once a trip has been created from their route.
type RouteLeg struct {
	Mode LegMode `json:"mode" groups:"basic"`

	DurationMinutes int `json:"durationMinutes" groups:"basic"`

	FromStopName     string `json:"fromStopName,omitempty" bson:"fromstopname,omitempty" groups:"basic"`
	ToStopName       string `json:"toStopName,omitempty" bson:"tostopname,omitempty" groups:"basic"`
	BusServiceNumber string `json:"busServiceNumber,omitempty" bson:"busservicenumber,omitempty" groups:"basic"`

	Geometry []Location `json:"geometry,omitempty" bson:"geometry,omitempty" groups:"basic"`
}

// Endpoint returns the last point of the leg geometry. Legs without geometry
// have no endpoint and cannot be advanced by proximity.
func (l RouteLeg) Endpoint() (Location, bool) {
	if len(l.Geometry) == 0 {
		return Location{}, false
	}

	return l.Geometry[len(l.Geometry)-1], true
}

type Route struct {
	Legs []RouteLeg `json:"legs" groups:"basic"`
}

func (r Route) TotalDurationMinutes() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.DurationMinutes
	}

	return total
}

func (r Route) Validate() error {
	if len(r.Legs) == 0 {
		return errors.New("route has no legs")
	}

	for _, leg := range r.Legs {
		if leg.DurationMinutes < 0 {
			return errors.New("leg has a negative duration")
		}

		if leg.Mode.IsBus() && leg.BusServiceNumber == "" {
			return errors.New("bus leg is missing a service number")
		}
	}

	return nil
}
