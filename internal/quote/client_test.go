package quote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gemstrategy/backend/internal/market"
	"github.com/gemstrategy/backend/pkg/config"
	"github.com/gemstrategy/backend/pkg/httputil"
	"github.com/gemstrategy/backend/pkg/logger"
)

func testClient(t *testing.T, upstream *httptest.Server) *Client {
	t.Helper()

	cfg := &config.Config{
		Env:      "development",
		LogLevel: "error",
		Quote: config.QuoteConfig{
			RequestTimeout: 5 * time.Second,
			MaxRetries:     3,
			InitialDelay:   time.Millisecond,
			MaxDelay:       10 * time.Millisecond,
		},
	}
	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log)

	return NewClient(httpClient, log, upstream.URL)
}

func window() (time.Time, time.Time) {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestFetchSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("s"); got != "iwda.uk" {
			t.Errorf("symbol query = %q, want iwda.uk", got)
		}
		if got := r.URL.Query().Get("d1"); got != "20240101" {
			t.Errorf("d1 query = %q, want 20240101", got)
		}
		w.Write([]byte("Date,Open,High,Low,Close,Volume\n" +
			"2024-06-03,100,101,99,100.5,1000\n" +
			"2024-06-04,100.5,102,100,101.25,1200\n"))
	}))
	defer server.Close()

	client := testClient(t, server)
	from, to := window()

	series, err := client.FetchSeries(context.Background(), "iwda.uk", from, to)
	if err != nil {
		t.Fatalf("FetchSeries() error = %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("got %d points, want 2", len(series))
	}
	if series[1].Close != 101.25 {
		t.Errorf("last close = %f, want 101.25", series[1].Close)
	}
}

func TestFetchSeriesServerErrorExhaustsRetries(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(t, server)
	from, to := window()

	_, err := client.FetchSeries(context.Background(), "iwda.uk", from, to)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T (%v), want *FetchError", err, err)
	}
	if fetchErr.Symbol != market.Symbol("iwda.uk") {
		t.Errorf("FetchError.Symbol = %s, want iwda.uk", fetchErr.Symbol)
	}

	// Initial attempt plus MaxRetries
	if got := atomic.LoadInt32(&requests); got != 4 {
		t.Errorf("upstream saw %d requests, want 4", got)
	}
}

func TestFetchSeriesEmptyBodyIsFormatError(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testClient(t, server)
	from, to := window()

	_, err := client.FetchSeries(context.Background(), "iwda.uk", from, to)

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error type = %T (%v), want *FormatError", err, err)
	}

	// Malformed payloads are not retried
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Errorf("upstream saw %d requests, want 1", got)
	}
}

func TestFetchSeriesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Refuse connections

	client := testClient(t, server)
	from, to := window()

	_, err := client.FetchSeries(context.Background(), "iwda.uk", from, to)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type = %T (%v), want *FetchError", err, err)
	}
}
