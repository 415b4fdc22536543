package arrivals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceGetArrivals(t *testing.T) {
	arrivalTime := time.Now().Add(4 * time.Minute).Truncate(time.Second)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stops/Stop%20A/arrivals", r.URL.EscapedPath())
		assert.Equal(t, "97", r.URL.Query().Get("service"))
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"serviceName":"97","expectedArrivals":["` + arrivalTime.Format(time.RFC3339) + `"]}]`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, "test-key")

	serviceArrivals, err := source.GetArrivals(context.Background(), "Stop A", "97")
	require.NoError(t, err)
	require.Len(t, serviceArrivals, 1)
	assert.Equal(t, "97", serviceArrivals[0].ServiceName)
	require.Len(t, serviceArrivals[0].Arrivals, 1)
	assert.True(t, serviceArrivals[0].Arrivals[0].Equal(arrivalTime))
}

func TestHTTPSourceSkipsUnparseableTimes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"serviceName":"97","expectedArrivals":["not-a-time","2026-09-01T10:04:00Z"]}]`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, "")

	serviceArrivals, err := source.GetArrivals(context.Background(), "Stop A", "97")
	require.NoError(t, err)
	require.Len(t, serviceArrivals, 1)
	assert.Len(t, serviceArrivals[0].Arrivals, 1)
}

func TestHTTPSourceNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, "")

	_, err := source.GetArrivals(context.Background(), "Stop A", "97")
	assert.ErrorContains(t, err, "502")
}

func TestHTTPSourceBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, "")

	_, err := source.GetArrivals(context.Background(), "Stop A", "97")
	assert.Error(t, err)
}
