package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLegMode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want LegMode
	}{
		{
			name: "walk uppercase",
			raw:  "WALK",
			want: WalkMode(),
		},
		{
			name: "walk mixed case",
			raw:  "Walking",
			want: WalkMode(),
		},
		{
			name: "bus",
			raw:  "BUS",
			want: BusMode(),
		},
		{
			name: "bus lowercase",
			raw:  "bus",
			want: BusMode(),
		},
		{
			name: "unknown mode folds into Other with original label",
			raw:  "TRAM",
			want: OtherMode("TRAM"),
		},
		{
			name: "empty folds into Other",
			raw:  "",
			want: OtherMode(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLegMode(tt.raw))
		})
	}
}

func TestLegModePredicates(t *testing.T) {
	assert.True(t, WalkMode().IsWalk())
	assert.False(t, WalkMode().IsBus())
	assert.True(t, BusMode().IsBus())
	assert.False(t, OtherMode("Ferry").IsWalk())
	assert.False(t, OtherMode("Ferry").IsBus())
}

func TestLegModeString(t *testing.T) {
	assert.Equal(t, "Walk", WalkMode().String())
	assert.Equal(t, "Other(Ferry)", OtherMode("Ferry").String())
}
