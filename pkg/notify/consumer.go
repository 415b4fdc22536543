package notify

import (
	"encoding/json"
	"os"

	"github.com/adjust/rmq/v5"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/wayfarer-app/wayfarer/pkg/model"
)

type NotifyBatchConsumer struct {
	Sink Sink
}

func NewNotifyBatchConsumer(sink Sink) *NotifyBatchConsumer {
	return &NotifyBatchConsumer{Sink: sink}
}

func (c *NotifyBatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	for _, payload := range payloads {
		var notification model.Notification
		if err := json.Unmarshal([]byte(payload), &notification); err != nil {
			log.Error().Err(err).Msg("Failed to decode notification payload")
			continue
		}

		if os.Getenv("WAYFARER_DEBUG") == "YES" {
			pretty.Println(notification)
		}

		if err := c.Sink.Show(notification); err != nil {
			log.Error().Err(err).Str("target", notification.TargetUser).Msg("Failed to deliver notification")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume from queue")
		}
	}
}
