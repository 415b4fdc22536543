package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarer-app/wayfarer/pkg/model"
)

type recordingSink struct {
	notifications []model.Notification
	err           error
}

func (s *recordingSink) Show(notification model.Notification) error {
	s.notifications = append(s.notifications, notification)

	return s.err
}

func TestDispatchArrivalFormatting(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		message string
		urgency model.NotificationUrgency
	}{
		{
			name:    "several minutes out",
			minutes: 4,
			message: "Bus 97 arriving at Stop A in 4 min",
			urgency: model.NotificationUrgencyNormal,
		},
		{
			name:    "one minute out",
			minutes: 1,
			message: "Bus 97 arriving at Stop A in 1 min",
			urgency: model.NotificationUrgencyHigh,
		},
		{
			name:    "arriving now",
			minutes: 0,
			message: "Bus 97 arriving at Stop A now",
			urgency: model.NotificationUrgencyHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			dispatcher := NewDispatcher(sink, nil)

			dispatcher.DispatchArrival("user-1", "97", "Stop A", tt.minutes)

			require.Len(t, sink.notifications, 1)
			notification := sink.notifications[0]
			assert.Equal(t, "user-1", notification.TargetUser)
			assert.Equal(t, "Bus arriving", notification.Title)
			assert.Equal(t, tt.message, notification.Message)
			assert.Equal(t, tt.urgency, notification.Urgency)
		})
	}
}

func TestDispatchArrivalWithoutPermission(t *testing.T) {
	sink := &recordingSink{}
	dispatcher := NewDispatcher(sink, func(userID string) bool { return false })

	dispatcher.DispatchArrival("user-1", "97", "Stop A", 3)

	assert.Empty(t, sink.notifications)
}

func TestDispatchArrivalSinkFailureDoesNotPanic(t *testing.T) {
	sink := &recordingSink{err: errors.New("push service unavailable")}
	dispatcher := NewDispatcher(sink, nil)

	dispatcher.DispatchArrival("user-1", "97", "Stop A", 3)

	assert.Len(t, sink.notifications, 1)
}
