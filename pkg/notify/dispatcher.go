// Package notify delivers user-facing notifications through a pluggable sink.
package notify

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wayfarer-app/wayfarer/pkg/model"
)

// Sink is the platform notification transport.
type Sink interface {
	Show(notification model.Notification) error
}

// PermissionChecker reports whether a user can receive notifications.
type PermissionChecker func(userID string) bool

// Dispatcher formats and issues notifications. It holds no state between
// calls; de-duplication is the responsibility of the caller.
type Dispatcher struct {
	Sink Sink

	// HasPermission gates delivery. A nil checker allows everything. A user
	// without permission gets a silent no-op, not an error.
	HasPermission PermissionChecker
}

func NewDispatcher(sink Sink, hasPermission PermissionChecker) *Dispatcher {
	return &Dispatcher{
		Sink:          sink,
		HasPermission: hasPermission,
	}
}

// DispatchArrival issues exactly one bus arrival notification. Arrivals one
// minute out or closer are urgent.
func (d *Dispatcher) DispatchArrival(userID string, serviceNumber string, stopName string, minutesUntilArrival int) {
	if d.HasPermission != nil && !d.HasPermission(userID) {
		return
	}

	urgency := model.NotificationUrgencyNormal
	if minutesUntilArrival <= 1 {
		urgency = model.NotificationUrgencyHigh
	}

	var message string
	if minutesUntilArrival <= 0 {
		message = fmt.Sprintf("Bus %s arriving at %s now", serviceNumber, stopName)
	} else {
		message = fmt.Sprintf("Bus %s arriving at %s in %d min", serviceNumber, stopName, minutesUntilArrival)
	}

	notification := model.Notification{
		TargetUser: userID,
		Title:      "Bus arriving",
		Message:    message,
		Urgency:    urgency,
	}

	if err := d.Sink.Show(notification); err != nil {
		log.Error().Err(err).Str("target", userID).Msg("Failed to show notification")
	}
}
