package ephem

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Fetcher downloads an element-table document from a remote ephemeris
// service. Requests are rate limited so batch refreshes stay polite to the
// upstream.
type Fetcher struct {
	client  *resty.Client
	limiter *rate.Limiter
	url     string
}

// NewFetcher builds a fetcher for the given element-table URL.
func NewFetcher(url string) *Fetcher {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "skytarget-ephem/1.0")

	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		url:     url,
	}
}

// Fetch retrieves and parses the remote element table.
func (f *Fetcher) Fetch(ctx context.Context) (*Table, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("ephemeris fetch: %w", err)
	}

	resp, err := f.client.R().SetContext(ctx).Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("ephemeris fetch %s: %w", f.url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ephemeris fetch %s: status %s", f.url, resp.Status())
	}
	return Load(bytes.NewReader(resp.Body()))
}
