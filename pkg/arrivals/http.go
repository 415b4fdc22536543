package arrivals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

type arrivalPrediction struct {
	ServiceName string `json:"serviceName"`

	ExpectedArrivals []string `json:"expectedArrivals"`
}

// HTTPSource polls a remote bus arrival API.
type HTTPSource struct {
	Endpoint string
	APIKey   string

	Client *http.Client
}

func NewHTTPSource(endpoint string, apiKey string) *HTTPSource {
	return &HTTPSource{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{},
	}
}

func (s *HTTPSource) GetArrivals(ctx context.Context, stopName string, serviceNumber string) ([]ServiceArrivals, error) {
	requestURL := fmt.Sprintf(
		"%s/stops/%s/arrivals?service=%s",
		s.Endpoint, url.PathEscape(stopName), url.QueryEscape(serviceNumber),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, err
	}
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arrival API returned status %d", resp.StatusCode)
	}

	jsonBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var predictions []arrivalPrediction
	if err := json.Unmarshal(jsonBytes, &predictions); err != nil {
		return nil, err
	}

	var serviceArrivals []ServiceArrivals
	for _, prediction := range predictions {
		arrival := ServiceArrivals{ServiceName: prediction.ServiceName}

		for _, expected := range prediction.ExpectedArrivals {
			arrivalTime, err := time.Parse(time.RFC3339, expected)
			if err != nil {
				log.Debug().Str("value", expected).Msg("Skipping unparseable arrival time")
				continue
			}

			arrival.Arrivals = append(arrival.Arrivals, arrivalTime)
		}

		serviceArrivals = append(serviceArrivals, arrival)
	}

	return serviceArrivals, nil
}
