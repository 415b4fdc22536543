package navigator

import (
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/wayfarer-app/wayfarer/pkg/model"
)

// LocationQueueName is where device location reports land.
const LocationQueueName = "location-queue"

type LocationFixEvent struct {
	UserID string

	Latitude       float64
	Longitude      float64
	AccuracyMetres float64

	Timestamp time.Time
}

// LocationBatchConsumer drains device location reports off the queue and
// feeds them into the owning user's session.
type LocationBatchConsumer struct {
	Manager *Manager
}

func NewLocationBatchConsumer(manager *Manager) *LocationBatchConsumer {
	return &LocationBatchConsumer{Manager: manager}
}

func (c *LocationBatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	for _, payload := range payloads {
		var event LocationFixEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode location fix")
			continue
		}

		if event.UserID == "" {
			continue
		}

		timestamp := event.Timestamp
		if timestamp.IsZero() {
			timestamp = time.Now()
		}

		c.Manager.SubmitFix(event.UserID, model.LocationFix{
			Location: model.Location{
				Latitude:  event.Latitude,
				Longitude: event.Longitude,
			},
			AccuracyMetres: event.AccuracyMetres,
			Timestamp:      timestamp,
		})
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume location fix")
		}
	}
}
