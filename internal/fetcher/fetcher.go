// Package fetcher retrieves pages from the listings site and hands back
// parsed HTML documents.
package fetcher

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a URL and parses the response as an HTML document.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*goquery.Document, error)

	// Close releases resources.
	Close() error
}

// Config holds shared fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// The site blocks obvious robot user agents; present a plain desktop browser.
const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:91.0) Gecko/20100101 Firefox/91.0"

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}
