package notify

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/wayfarer-app/wayfarer/pkg/model"
	"github.com/wayfarer-app/wayfarer/pkg/redis_client"
)

const queueName = "notify-queue"

// QueueSink hands notifications off to the notify worker over redis instead
// of pushing them inline.
type QueueSink struct {
	queue rmq.Queue
}

func NewQueueSink() (*QueueSink, error) {
	queue, err := redis_client.QueueConnection.OpenQueue(queueName)
	if err != nil {
		return nil, err
	}

	return &QueueSink{queue: queue}, nil
}

func (s *QueueSink) Show(notification model.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	return s.queue.Publish(string(payload))
}
