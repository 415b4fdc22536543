package model

import "time"

type TripStatus string

const (
	TripStatusPreview   TripStatus = "Preview"
	TripStatusActive    TripStatus = "Active"
	TripStatusCompleted TripStatus = "Completed"
)

// TripSession is a single user journey across a multi-leg route.
//
// CurrentLegIndex always satisfies 0 <= CurrentLegIndex <= len(Route.Legs),
// and is equal to len(Route.Legs) exactly when the session is Completed.
type TripSession struct {
	PrimaryIdentifier string `json:"identifier" bson:"primaryidentifier" groups:"basic"`
	UserID            string `json:"-" bson:"userid"`

	Route Route `json:"route" groups:"basic"`

	CurrentLegIndex int        `json:"currentLegIndex" bson:"currentlegindex" groups:"basic"`
	Status          TripStatus `json:"status" groups:"basic"`

	StartLocationName string    `json:"startLocationName" bson:"startlocationname" groups:"basic"`
	EndLocationName   string    `json:"endLocationName" bson:"endlocationname" groups:"basic"`
	StartLocation     *Location `json:"startLocation,omitempty" bson:"startlocation,omitempty" groups:"basic"`
	EndLocation       *Location `json:"endLocation,omitempty" bson:"endlocation,omitempty" groups:"basic"`

	StartTime time.Time  `json:"startTime" bson:"starttime" groups:"basic"`
	EndTime   *time.Time `json:"endTime,omitempty" bson:"endtime,omitempty" groups:"basic"`

	CreationDateTime     time.Time `json:"-" bson:"creationdatetime"`
	ModificationDateTime time.Time `json:"-" bson:"modificationdatetime"`
}

// CurrentLeg returns the leg the user is currently on. The second return is
// false for a completed session, where the index points past the final leg.
func (t *TripSession) CurrentLeg() (RouteLeg, bool) {
	if t.CurrentLegIndex < 0 || t.CurrentLegIndex >= len(t.Route.Legs) {
		return RouteLeg{}, false
	}

	return t.Route.Legs[t.CurrentLegIndex], true
}

// NextLeg returns the leg immediately after the current one, if any.
func (t *TripSession) NextLeg() (RouteLeg, bool) {
	next := t.CurrentLegIndex + 1
	if next < 0 || next >= len(t.Route.Legs) {
		return RouteLeg{}, false
	}

	return t.Route.Legs[next], true
}

// OnFinalLeg reports whether advancing once more would complete the trip.
func (t *TripSession) OnFinalLeg() bool {
	return t.CurrentLegIndex == len(t.Route.Legs)-1
}
