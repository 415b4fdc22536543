package model

import "strings"

type LegKind string

const (
	LegKindWalk  LegKind = "Walk"
	LegKindBus   LegKind = "Bus"
	LegKindOther LegKind = "Other"
)

// LegMode is a closed set of transport modes for a route leg. Anything that
// is not a walk or a bus keeps its original label under the Other kind.
type LegMode struct {
	Kind  LegKind `json:"kind" groups:"basic"`
	Label string  `json:"label,omitempty" bson:"label,omitempty" groups:"basic"`
}

func WalkMode() LegMode {
	return LegMode{Kind: LegKindWalk}
}

func BusMode() LegMode {
	return LegMode{Kind: LegKindBus}
}

func OtherMode(label string) LegMode {
	return LegMode{Kind: LegKindOther, Label: label}
}

// ParseLegMode maps a raw mode string from a route payload onto a LegMode.
// Unrecognised modes are folded into Other with the raw value as its label.
func ParseLegMode(raw string) LegMode {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "WALK", "WALKING":
		return WalkMode()
	case "BUS":
		return BusMode()
	default:
		return OtherMode(raw)
	}
}

func (m LegMode) IsWalk() bool {
	return m.Kind == LegKindWalk
}

func (m LegMode) IsBus() bool {
	return m.Kind == LegKindBus
}

func (m LegMode) String() string {
	if m.Kind == LegKindOther && m.Label != "" {
		return string(m.Kind) + "(" + m.Label + ")"
	}

	return string(m.Kind)
}
