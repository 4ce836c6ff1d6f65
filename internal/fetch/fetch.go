package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBlobSize is the PDS upload limit for image blobs.
const MaxBlobSize = 1_000_000

// Error means the thumbnail could not be downloaded. The pipeline
// recovers locally by posting without a link card; this error is
// never surfaced to the user.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher downloads thumbnail binaries from third-party hosts.
type Fetcher struct {
	http *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the raw bytes behind url. Any transport error,
// non-2xx reply, or oversized body fails with *Error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	// Read one byte past the limit so an oversized body is detected
	// instead of silently truncated.
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBlobSize+1))
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	if len(data) > MaxBlobSize {
		return nil, &Error{URL: url, Err: fmt.Errorf("image exceeds %d bytes", MaxBlobSize)}
	}

	return data, nil
}
