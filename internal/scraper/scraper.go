// Package scraper drives the page-by-page search: locate listing cards,
// extract each listing from its detail page, apply overrides and the filter.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/rentfinder/rentfinder/internal/fetcher"
	"github.com/rentfinder/rentfinder/internal/listing"
	"github.com/rentfinder/rentfinder/internal/logger"
)

// DefaultBaseURL is the listings site the scraper targets.
const DefaultBaseURL = "https://www.domain.com.au"

// Card variants the site uses for listing containers, identified by their
// data-testid attribute. Paid placements get their own wrapper IDs.
var cardTestIDs = map[string]bool{
	"listing-card-inspection":          true,
	"listing-card-wrapper-premiumplus": true,
	"listing-card-wrapper-standardpp":  true,
	"listing-card-wrapper-elite":       true,
	"listing-card-wrapper-elitepp":     true,
}

// Config holds the search parameters for one run.
type Config struct {
	BaseURL  string
	Location string        // location slug, e.g. collingwood-vic-3066
	Day      string        // yyyy-MM-dd inspection date; empty = not date-scoped
	Delay    time.Duration // pause between page fetches
	MaxPages int           // 0 = stop only when a page has no listings
}

// Scraper runs the search pipeline. Listings are fetched and processed one at
// a time; no two network operations are in flight concurrently.
type Scraper struct {
	fetcher   fetcher.Fetcher
	filter    *listing.Filter
	overrides listing.Overrides
	cfg       Config
}

// New creates a scraper. filter may be nil (accept everything) and overrides
// may be nil (no manual corrections).
func New(f fetcher.Fetcher, filter *listing.Filter, overrides listing.Overrides, cfg Config) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Scraper{
		fetcher:   f,
		filter:    filter,
		overrides: overrides,
		cfg:       cfg,
	}
}

// searchState is the pagination driver's state.
type searchState int

const (
	stateFetching searchState = iota
	stateDone
)

// Search walks result pages in ascending order starting at page 1 and calls
// emit for every listing that passes the filter, in document order. It stops
// when a page yields zero listing cards. Extraction and transport errors
// abort the run.
func (s *Scraper) Search(ctx context.Context, emit func(*listing.Listing) error) error {
	page := 1
	state := stateFetching

	for state == stateFetching {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageURL, err := s.pageURL(page)
		if err != nil {
			return err
		}
		logger.Debug("fetching results page", "page", page, "url", pageURL)

		doc, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return err
		}

		cards := locateCards(doc)
		logger.Info("results page fetched", "page", page, "listings", len(cards))

		if len(cards) == 0 {
			state = stateDone
			continue
		}

		for _, card := range cards {
			l, err := s.extractListing(ctx, card, pageURL)
			if err != nil {
				return err
			}

			// Overrides must land before the filter sees the listing.
			if s.overrides != nil {
				s.overrides.Apply(l)
			}

			if !s.filter.Matches(l) {
				logger.Debug("listing filtered out", "slug", l.Slug)
				continue
			}
			if err := emit(l); err != nil {
				return err
			}
		}

		page++
		if s.cfg.MaxPages > 0 && page > s.cfg.MaxPages {
			logger.Info("page limit reached", "max_pages", s.cfg.MaxPages)
			state = stateDone
			continue
		}

		if s.cfg.Delay > 0 {
			select {
			case <-time.After(s.cfg.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return nil
}

// pageURL builds the search-results URL for one page number.
func (s *Scraper) pageURL(page int) (string, error) {
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", s.cfg.BaseURL, err)
	}

	u = u.JoinPath("rent", s.cfg.Location)
	q := u.Query()
	if s.cfg.Day != "" {
		u = u.JoinPath("inspection-times")
		q.Set("inspectiondate", s.cfg.Day)
	}
	q.Set("page", fmt.Sprintf("%d", page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// locateCards returns the listing containers on a results page in document
// order. An empty result is the pagination termination signal.
func locateCards(doc *goquery.Document) []*goquery.Selection {
	var cards []*goquery.Selection
	doc.Find("div[data-testid]").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("data-testid")
		if cardTestIDs[id] {
			cards = append(cards, sel)
		}
	})
	return cards
}
