package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pders01/trss/internal/config"
	"github.com/pders01/trss/internal/storage"
)

const maxFeedBytes = 10 << 20

// Fetcher turns one source into candidate items. Implementations must be
// safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, src config.Source) ([]*storage.Item, error)
}

// HTTPFetcher downloads a source over HTTP and parses it with gofeed.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	parser    *Parser
}

func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Feed.HTTPTimeout,
		},
		userAgent: cfg.Feed.UserAgent,
		parser:    NewParser(),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src config.Source) ([]*storage.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	items, err := f.parser.Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, err
	}
	return items, nil
}
