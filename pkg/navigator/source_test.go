package navigator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarer-app/wayfarer/pkg/model"
)

func TestPushLocationSourceDeliversWhileStarted(t *testing.T) {
	source := NewPushLocationSource()

	fixes, err := source.Start(time.Second)
	require.NoError(t, err)

	source.Offer(model.LocationFix{Location: stopAPoint})

	select {
	case fix := <-fixes:
		assert.Equal(t, stopAPoint, fix.Location)
	case <-time.After(time.Second):
		t.Fatal("fix was not delivered")
	}
}

func TestPushLocationSourceDropsWhenStopped(t *testing.T) {
	source := NewPushLocationSource()

	// Offering before Start is a no-op, not a panic.
	source.Offer(model.LocationFix{Location: stopAPoint})

	fixes, err := source.Start(time.Second)
	require.NoError(t, err)

	source.Stop()
	source.Stop() // idempotent

	source.Offer(model.LocationFix{Location: stopAPoint})

	_, open := <-fixes
	assert.False(t, open)
}

func TestPushLocationSourceDoubleStart(t *testing.T) {
	source := NewPushLocationSource()

	_, err := source.Start(time.Second)
	require.NoError(t, err)

	_, err = source.Start(time.Second)
	assert.Error(t, err)

	// A stopped source can be started again for the next trip.
	source.Stop()
	_, err = source.Start(time.Second)
	assert.NoError(t, err)
}
