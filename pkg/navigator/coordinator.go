package navigator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/wayfarer-app/wayfarer/pkg/model"
	"github.com/wayfarer-app/wayfarer/pkg/tripstore"
)

const locationFixInterval = 5 * time.Second

var (
	ErrTripConflict       = errors.New("an active trip already exists")
	ErrConflictUnresolved = errors.New("a trip conflict is awaiting resolution")
	ErrNoPreviewRoute     = errors.New("no preview route to start")
	ErrNoActiveTrip       = errors.New("no active trip")
	ErrTripAlreadyActive  = errors.New("navigation already started")
	ErrCoordinatorClosed  = errors.New("session coordinator closed")
)

// Coordinator owns one user's navigation session. All mutation of the trip's
// progress pointer and of the arrival monitor's dedup state happens on the
// coordinator's own goroutine; location fixes, monitor ticks and caller
// commands all funnel through a single ordered message channel.
type Coordinator struct {
	userID string

	store   tripstore.Store
	syncer  *tripstore.ProgressSyncer
	monitor *ArrivalMonitor
	source  LocationSource
	events  Events

	// tickInterval drives the periodic arrival checks while tracking.
	tickInterval time.Duration

	// Owned by the run loop.
	mode     Mode
	session  *model.TripSession
	preview  *model.TripSession
	tracking *trackingState

	messages chan coordinatorMessage
	quit     chan struct{}
	loopDone chan struct{}
	closed   sync.Once
}

type trackingState struct {
	stop chan struct{}
}

type coordinatorMessage interface{}

type locationFixMsg struct {
	fix model.LocationFix
}

type arrivalTickMsg struct{}

type commandMsg struct {
	action func() error
	reply  chan error
}

func New(userID string, store tripstore.Store, syncer *tripstore.ProgressSyncer, monitor *ArrivalMonitor, source LocationSource, events Events) *Coordinator {
	return &Coordinator{
		userID:  userID,
		store:   store,
		syncer:  syncer,
		monitor: monitor,
		source:  source,
		events:  events,

		tickInterval: ArrivalCheckInterval,

		mode: ModeNoTrip,

		messages: make(chan coordinatorMessage, 64),
		quit:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
}

// Start launches the coordinator loop. It first resumes any Active trip the
// store already holds for the user.
func (c *Coordinator) Start() {
	go c.run()
}

// Close shuts the coordinator down, stopping tracking on the way out. Safe to
// call more than once.
func (c *Coordinator) Close() {
	c.closed.Do(func() {
		close(c.quit)
	})

	<-c.loopDone
}

func (c *Coordinator) run() {
	defer close(c.loopDone)
	defer c.stopTracking()

	c.resume()

	for {
		select {
		case msg := <-c.messages:
			c.handleMessage(msg)
		case <-c.quit:
			return
		}
	}
}

func (c *Coordinator) resume() {
	existing, err := c.store.GetActiveTrip(context.Background(), c.userID)
	if err != nil {
		log.Error().Err(err).Str("user", c.userID).Msg("Failed to look up active trip")
		return
	}

	if existing == nil {
		return
	}

	log.Info().Str("user", c.userID).Str("trip", existing.PrimaryIdentifier).Msg("Resuming active trip")

	c.session = existing
	c.mode = ModeActiveTrip
	c.startTracking()
	c.monitor.Check(context.Background(), c.session)
}

func (c *Coordinator) handleMessage(msg coordinatorMessage) {
	switch msg := msg.(type) {
	case locationFixMsg:
		c.handleFix(msg.fix)
	case arrivalTickMsg:
		if c.trackingActive() {
			c.monitor.Check(context.Background(), c.session)
		}
	case commandMsg:
		msg.reply <- msg.action()
	}
}

// trackingActive reports whether an Active trip is being tracked. A pending
// conflict does not pause the existing trip.
func (c *Coordinator) trackingActive() bool {
	return (c.mode == ModeActiveTrip || c.mode == ModeConflictPending) && c.session != nil
}

func (c *Coordinator) handleFix(fix model.LocationFix) {
	if !c.trackingActive() {
		return
	}

	switch evaluateFix(c.session, fix) {
	case decisionAdvance:
		c.advanceLeg()
	case decisionComplete:
		c.completeTrip()
	}
}

func (c *Coordinator) advanceLeg() {
	c.session.CurrentLegIndex++
	c.session.ModificationDateTime = time.Now()
	newIndex := c.session.CurrentLegIndex

	log.Info().
		Str("trip", c.session.PrimaryIdentifier).
		Int("legindex", newIndex).
		Msg("Advanced to next leg")

	if c.events.AdvancedToLeg != nil {
		c.events.AdvancedToLeg(copySession(c.session), newIndex)
	}

	c.syncer.SyncProgress(c.session.PrimaryIdentifier, newIndex)

	// Check straight away so the user isn't left waiting out the periodic
	// interval right after a leg change.
	c.monitor.Check(context.Background(), c.session)
}

func (c *Coordinator) completeTrip() {
	c.finishSession()

	log.Info().Str("trip", c.session.PrimaryIdentifier).Msg("Trip completed")

	if c.events.Completed != nil {
		c.events.Completed(copySession(c.session))
	}

	c.syncer.SyncCompletion(c.session.PrimaryIdentifier)

	c.session = nil
	if c.preview != nil {
		c.mode = ModePreviewOnly
	} else {
		c.mode = ModeNoTrip
	}
}

// finishSession marks the session Completed and stops tracking in the same
// handler, so no further fix or tick can touch this session afterwards.
func (c *Coordinator) finishSession() {
	now := time.Now()

	c.session.CurrentLegIndex = len(c.session.Route.Legs)
	c.session.Status = model.TripStatusCompleted
	c.session.EndTime = &now
	c.session.ModificationDateTime = now

	c.stopTracking()
}

func (c *Coordinator) startTracking() {
	if c.tracking != nil {
		return
	}

	fixes, err := c.source.Start(locationFixInterval)
	if err != nil {
		log.Error().Err(err).Str("user", c.userID).Msg("Failed to start location source")
		return
	}

	tracking := &trackingState{stop: make(chan struct{})}
	c.tracking = tracking

	go c.pumpFixes(fixes, tracking.stop)
	go c.pumpTicks(tracking.stop)
}

func (c *Coordinator) stopTracking() {
	if c.tracking == nil {
		return
	}

	close(c.tracking.stop)
	c.source.Stop()
	c.tracking = nil
}

func (c *Coordinator) pumpFixes(fixes <-chan model.LocationFix, stop <-chan struct{}) {
	for {
		select {
		case fix, ok := <-fixes:
			if !ok {
				return
			}
			c.send(locationFixMsg{fix: fix}, stop)
		case <-stop:
			return
		}
	}
}

func (c *Coordinator) pumpTicks(stop <-chan struct{}) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.send(arrivalTickMsg{}, stop)
		case <-stop:
			return
		}
	}
}

func (c *Coordinator) send(msg coordinatorMessage, stop <-chan struct{}) {
	select {
	case c.messages <- msg:
	case <-stop:
	case <-c.quit:
	}
}

// do runs an action on the coordinator goroutine and waits for its result.
func (c *Coordinator) do(action func() error) error {
	reply := make(chan error, 1)

	select {
	case c.messages <- commandMsg{action: action, reply: reply}:
	case <-c.quit:
		return ErrCoordinatorClosed
	}

	select {
	case err := <-reply:
		return err
	case <-c.quit:
		return ErrCoordinatorClosed
	}
}

// PreviewRoute supplies a candidate route. When a trip is already Active the
// preview is parked, the mode moves to ConflictPending and ErrTripConflict is
// returned; the existing trip is not touched until the caller resolves the
// conflict.
func (c *Coordinator) PreviewRoute(route model.Route, startLocationName string, endLocationName string, startLocation *model.Location, endLocation *model.Location) error {
	return c.do(func() error {
		if err := route.Validate(); err != nil {
			return err
		}

		now := time.Now()
		preview := &model.TripSession{
			UserID: c.userID,

			Route: route,

			CurrentLegIndex: 0,
			Status:          model.TripStatusPreview,

			StartLocationName: startLocationName,
			EndLocationName:   endLocationName,
			StartLocation:     startLocation,
			EndLocation:       endLocation,

			CreationDateTime:     now,
			ModificationDateTime: now,
		}

		switch c.mode {
		case ModeNoTrip, ModePreviewOnly:
			c.preview = preview
			c.mode = ModePreviewOnly

			return nil
		default:
			c.preview = preview

			if c.mode == ModeActiveTrip {
				c.mode = ModeConflictPending

				if c.events.ConflictDetected != nil {
					c.events.ConflictDetected(copySession(c.session))
				}
			}

			return ErrTripConflict
		}
	})
}

// StartNavigation promotes the preview route to an Active, persisted trip.
func (c *Coordinator) StartNavigation() error {
	return c.do(func() error {
		switch c.mode {
		case ModePreviewOnly:
			return c.startFromPreview()
		case ModeActiveTrip:
			return ErrTripAlreadyActive
		case ModeConflictPending:
			return ErrConflictUnresolved
		default:
			return ErrNoPreviewRoute
		}
	})
}

func (c *Coordinator) startFromPreview() error {
	started, err := c.store.StartTrip(context.Background(), c.preview)
	if err != nil {
		return err
	}

	c.session = started
	c.preview = nil
	c.mode = ModeActiveTrip

	log.Info().Str("user", c.userID).Str("trip", started.PrimaryIdentifier).Msg("Navigation started")

	c.monitor.Reset()
	c.startTracking()
	c.monitor.Check(context.Background(), c.session)

	return nil
}

// ResolveConflict settles a pending conflict: either end the current trip and
// switch to the parked preview, or keep the current trip and discard it.
func (c *Coordinator) ResolveConflict(switchToNew bool) error {
	return c.do(func() error {
		if c.mode != ModeConflictPending {
			return errors.New("no conflict to resolve")
		}

		if !switchToNew {
			c.preview = nil
			c.mode = ModeActiveTrip

			return nil
		}

		c.endActiveSession()
		c.mode = ModePreviewOnly

		return c.startFromPreview()
	})
}

// EndTrip terminates the active trip on the user's request.
func (c *Coordinator) EndTrip() error {
	return c.do(func() error {
		if !c.trackingActive() {
			return ErrNoActiveTrip
		}

		c.endActiveSession()

		if c.preview != nil {
			c.mode = ModePreviewOnly
		} else {
			c.mode = ModeNoTrip
		}

		return nil
	})
}

func (c *Coordinator) endActiveSession() {
	c.finishSession()

	log.Info().Str("trip", c.session.PrimaryIdentifier).Msg("Trip ended by user")

	c.syncer.SyncCompletion(c.session.PrimaryIdentifier)
	c.session = nil
}

// AdvanceManually moves the trip forward one leg without a proximity signal.
// This is the advancement path for legs without geometry.
func (c *Coordinator) AdvanceManually() error {
	return c.do(func() error {
		if !c.trackingActive() {
			return ErrNoActiveTrip
		}

		if c.session.OnFinalLeg() {
			c.completeTrip()
		} else {
			c.advanceLeg()
		}

		return nil
	})
}

// Snapshot is a point-in-time copy of the coordinator's state.
type Snapshot struct {
	Mode    Mode
	Session *model.TripSession
	Preview *model.TripSession
}

func (c *Coordinator) Snapshot() (Snapshot, error) {
	var snapshot Snapshot

	err := c.do(func() error {
		snapshot.Mode = c.mode
		snapshot.Session = copySession(c.session)
		snapshot.Preview = copySession(c.preview)

		return nil
	})

	return snapshot, err
}

func copySession(session *model.TripSession) *model.TripSession {
	if session == nil {
		return nil
	}

	var copied model.TripSession
	if err := copier.CopyWithOption(&copied, session, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy trip session")
		return nil
	}

	return &copied
}
