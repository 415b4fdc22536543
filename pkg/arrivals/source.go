// Package arrivals queries upcoming bus arrival times for a stop.
package arrivals

import (
	"context"
	"time"
)

// ServiceArrivals holds the predicted arrival times for one bus service at a
// stop, soonest first.
type ServiceArrivals struct {
	ServiceName string      `json:"serviceName"`
	Arrivals    []time.Time `json:"arrivals"`
}

type Source interface {
	GetArrivals(ctx context.Context, stopName string, serviceNumber string) ([]ServiceArrivals, error)
}
