package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/rentfinder/rentfinder/internal/logger"
)

// StaticFetcher uses Colly for plain HTTP fetching. It implements the Fetcher
// interface.
type StaticFetcher struct {
	config Config
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg Config) *StaticFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves a page using Colly and parses it with goquery.
//
// Accept-Encoding is pinned to gzip, which turns off the HTTP transport's
// transparent decompression, so a gzip-encoded body is inflated here before
// parsing. Network errors, non-2xx statuses and decompression failures all
// propagate; there is no retry.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Debug("static fetch starting", "url", targetURL)

	// Create a new collector for each request
	c := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
	)
	c.SetRequestTimeout(f.config.Timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
		r.Headers.Set("Accept-Encoding", "gzip")
	})

	var (
		body     []byte
		encoding string
		fetchErr error
	)

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		encoding = r.Headers.Get("Content-Encoding")
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"content_encoding", encoding,
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		if r != nil {
			statusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error for %s (status %d): %w", targetURL, statusCode, err)
	})

	if err := c.Visit(targetURL); err != nil {
		return nil, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}

	var reader io.Reader = bytes.NewReader(body)
	// Sniff the gzip magic rather than trusting the header alone; the body is
	// only still compressed when the transport didn't negotiate the encoding.
	if encoding == "gzip" && isGzip(body) {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress response from %s: %w", targetURL, err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", targetURL, err)
	}

	logger.Debug("static fetch complete", "url", targetURL)
	return doc, nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

func isGzip(body []byte) bool {
	return len(body) > 2 && body[0] == 0x1f && body[1] == 0x8b
}
