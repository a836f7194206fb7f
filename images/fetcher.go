// Package images downloads image content into memory for upload to the
// publishing platform.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"wepub/config"
)

// FetchError reports a failed image download along with the URL that
// failed, so skipped images can be diagnosed without replaying.
type FetchError struct {
	URL string
	Err error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetch image %s: %v", e.URL, e.Err)
}

func (e FetchError) Unwrap() error { return e.Err }

// Fetcher performs single-attempt, bounded-timeout image downloads.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher constructs a fetcher with the configured request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{httpClient: &http.Client{Timeout: config.RequestTimeout}}
}

// Fetch downloads rawURL and returns the response bytes. The whole body is
// held in memory; nothing touches disk. There is no size cap on the
// response.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, FetchError{URL: rawURL, Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, FetchError{URL: rawURL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, FetchError{URL: rawURL, Err: err}
	}
	return body, nil
}
