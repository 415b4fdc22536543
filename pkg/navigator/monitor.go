package navigator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wayfarer-app/wayfarer/pkg/arrivals"
	"github.com/wayfarer-app/wayfarer/pkg/model"
	"github.com/wayfarer-app/wayfarer/pkg/notify"
)

const (
	// ArrivalCheckInterval is how often the monitor runs while a trip is
	// Active, independent of checks fired right after a leg advancement.
	ArrivalCheckInterval = 2 * time.Minute

	notifyWindowMaxMinutes = 5

	// dedupCooldown is the minimum time before an identical notification
	// key may be re-sent.
	dedupCooldown = 5 * time.Minute
)

// ArrivalMonitor decides when to surface an arrival notification for the bus
// leg immediately following the current walk leg.
//
// Dedup state lives for the lifetime of the monitor and has a single writer:
// Check is only ever invoked from the session coordinator goroutine.
type ArrivalMonitor struct {
	Source     arrivals.Source
	Dispatcher *notify.Dispatcher

	now func() time.Time

	lastKey    string
	lastSentAt time.Time
}

func NewArrivalMonitor(source arrivals.Source, dispatcher *notify.Dispatcher) *ArrivalMonitor {
	return &ArrivalMonitor{
		Source:     source,
		Dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Reset clears the dedup state when a new trip starts.
func (m *ArrivalMonitor) Reset() {
	m.lastKey = ""
	m.lastSentAt = time.Time{}
}

// Check runs one arrival check cycle. Failures are logged and the cycle is
// skipped; nothing is retried and nothing propagates.
func (m *ArrivalMonitor) Check(ctx context.Context, session *model.TripSession) {
	stopName, serviceNumber, ok := upcomingBusLeg(session)
	if !ok {
		return
	}

	serviceArrivals, err := m.Source.GetArrivals(ctx, stopName, serviceNumber)
	if err != nil {
		log.Error().Err(err).Str("stop", stopName).Str("service", serviceNumber).Msg("Arrival check failed")
		return
	}

	nextArrival, ok := firstArrival(serviceArrivals, serviceNumber)
	if !ok {
		return
	}

	now := m.now()

	minutesUntilArrival := int(nextArrival.Sub(now).Minutes())
	if minutesUntilArrival < 0 {
		minutesUntilArrival = 0
	}
	if minutesUntilArrival > notifyWindowMaxMinutes {
		return
	}

	key := fmt.Sprintf("%s_%s_%d", serviceNumber, stopName, minutesUntilArrival)
	if key == m.lastKey && now.Sub(m.lastSentAt) < dedupCooldown {
		return
	}

	m.Dispatcher.DispatchArrival(session.UserID, serviceNumber, stopName, minutesUntilArrival)

	m.lastKey = key
	m.lastSentAt = now
}

// upcomingBusLeg resolves which stop and bus service to watch. While walking
// towards a bus stop that is the next leg's service; once the bus leg itself
// is current (the user is waiting at the stop) it stays eligible, keyed on
// the stop the walk leg delivered them to.
func upcomingBusLeg(session *model.TripSession) (string, string, bool) {
	currentLeg, ok := session.CurrentLeg()
	if !ok {
		return "", "", false
	}

	if currentLeg.Mode.IsWalk() {
		nextLeg, ok := session.NextLeg()
		if !ok || !nextLeg.Mode.IsBus() {
			return "", "", false
		}

		stopName := currentLeg.ToStopName
		serviceNumber := nextLeg.BusServiceNumber
		if stopName == "" || serviceNumber == "" {
			return "", "", false
		}

		return stopName, serviceNumber, true
	}

	if currentLeg.Mode.IsBus() {
		stopName := currentLeg.FromStopName
		if stopName == "" && session.CurrentLegIndex > 0 {
			stopName = session.Route.Legs[session.CurrentLegIndex-1].ToStopName
		}

		serviceNumber := currentLeg.BusServiceNumber
		if stopName == "" || serviceNumber == "" {
			return "", "", false
		}

		return stopName, serviceNumber, true
	}

	return "", "", false
}

func firstArrival(serviceArrivals []arrivals.ServiceArrivals, serviceNumber string) (time.Time, bool) {
	for _, service := range serviceArrivals {
		if service.ServiceName != serviceNumber {
			continue
		}
		if len(service.Arrivals) > 0 {
			return service.Arrivals[0], true
		}
	}

	// Some arrival APIs don't echo the service name back. Fall back to the
	// first populated entry.
	for _, service := range serviceArrivals {
		if len(service.Arrivals) > 0 {
			return service.Arrivals[0], true
		}
	}

	return time.Time{}, false
}
