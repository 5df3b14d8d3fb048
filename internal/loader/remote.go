package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned when the remote fetcher's circuit breaker is
// open and requests are being rejected without touching the network.
var ErrCircuitOpen = errors.New("remote fetch circuit is open")

// maxDocumentBytes caps remote document size (64 MiB). Corpus exports are
// a few megabytes; anything larger is a misconfigured source.
const maxDocumentBytes = 64 << 20

// RemoteFetcher downloads documents over HTTP behind a circuit breaker.
// After 3 consecutive failures the circuit opens for 30 seconds; two
// successful probes in half-open state close it again.
type RemoteFetcher struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewRemoteFetcher creates a fetcher with the default client and breaker.
func NewRemoteFetcher() *RemoteFetcher {
	return &RemoteFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "DocumentFetcher",
			MaxRequests: 2,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

// Fetch downloads the document at url. Non-2xx responses count as
// failures toward the breaker.
func (f *RemoteFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	result, err := f.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}

		return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		return nil, err
	}

	return result.([]byte), nil
}
