package scraper

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/rentfinder/rentfinder/internal/listing"
	"github.com/rentfinder/rentfinder/internal/logger"
)

// Script element holding the embedded Next.js page payload on detail pages.
const payloadScriptID = "__NEXT_DATA__"

// Advertised prices come in shapes like "$550 per week" or "$1,200pw"; the
// dollar amount is all we take.
var priceRe = regexp.MustCompile(`\$\d+(\.\d+)?`)

// extractListing follows a located card to its detail page and builds the
// listing from the embedded JSON payload. A page without the payload is a
// broken markup contract and aborts the run.
func (s *Scraper) extractListing(ctx context.Context, card *goquery.Selection, pageURL string) (*listing.Listing, error) {
	detailURL, err := cardDetailURL(card, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := s.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return nil, err
	}

	raw := doc.Find("script#" + payloadScriptID).First().Text()
	if raw == "" {
		return nil, fmt.Errorf("no %s payload on %s", payloadScriptID, detailURL)
	}

	props := gjson.Get(raw, "props.pageProps")
	if !props.Exists() {
		return nil, fmt.Errorf("malformed %s payload on %s: missing props.pageProps", payloadScriptID, detailURL)
	}

	// A node the markup contract promises being absent means the site changed
	// underneath us; guessing on is worse than stopping. Note this covers the
	// price node being missing, not a present price failing to parse.
	for _, key := range []string{"beds", "address", "listingSummary.price", "agents"} {
		if !props.Get(key).Exists() {
			return nil, fmt.Errorf("malformed %s payload on %s: missing %s", payloadScriptID, detailURL, key)
		}
	}

	l := &listing.Listing{
		Beds:     int(props.Get("beds").Int()),
		Location: props.Get("address").String(),
		URL:      detailURL,
	}

	canonical := props.Get("listingUrl").String()
	if canonical == "" {
		canonical = detailURL
	}
	l.Slug = lastPathSegment(canonical)

	if price, ok := parsePrice(props.Get("listingSummary.price").String()); ok {
		l.Price = &price
	}

	feats := listing.InferFeatures(searchText(props))
	l.AirCon = feats.AirCon
	l.RealShower = feats.RealShower
	l.Carpeted = feats.Carpeted
	l.SecureEntrance = feats.SecureEntrance

	l.AgentEmails = agentEmails(props.Get("agents"))

	logger.Debug("listing extracted", "slug", l.Slug, "beds", l.Beds)
	return l, nil
}

// cardDetailURL pulls the detail-page address from the card's first anchor,
// resolved against the results page URL.
func cardDetailURL(card *goquery.Selection, pageURL string) (string, error) {
	href, ok := card.Find("a[href]").First().Attr("href")
	if !ok || href == "" {
		return "", fmt.Errorf("listing card has no detail link")
	}

	linkURL, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid detail link %q: %w", href, err)
	}
	if !linkURL.IsAbs() {
		base, err := url.Parse(pageURL)
		if err != nil {
			return "", err
		}
		linkURL = base.ResolveReference(linkURL)
	}
	return linkURL.String(), nil
}

// parsePrice normalizes a raw price string to a dollar amount. A string with
// no recognizable amount (e.g. "Contact agent") is not an error; the listing
// just proceeds with price unset.
func parsePrice(text string) (float64, bool) {
	normalized := strings.ReplaceAll(text, ",", "")
	match := priceRe.FindString(normalized)
	if match == "" {
		logger.Warn("failed to parse price", "price", text)
		return 0, false
	}
	price, err := strconv.ParseFloat(strings.TrimPrefix(match, "$"), 64)
	if err != nil {
		logger.Warn("failed to parse price", "price", text, "error", err)
		return 0, false
	}
	return price, true
}

// searchText assembles the free text fed to feature inference: description,
// then the flat features array, then structured feature names, one section
// per line. Absent or empty sections contribute nothing.
func searchText(props gjson.Result) string {
	var b strings.Builder

	if desc := props.Get("description"); desc.Exists() {
		writeJoined(&b, desc.Array(), func(r gjson.Result) string { return r.String() })
	}
	if feats := props.Get("features"); feats.Exists() {
		writeJoined(&b, feats.Array(), func(r gjson.Result) string { return r.String() })
	}
	if structured := props.Get("structuredFeatures"); structured.Exists() {
		writeJoined(&b, structured.Array(), func(r gjson.Result) string { return r.Get("name").String() })
	}

	return b.String()
}

func writeJoined(b *strings.Builder, items []gjson.Result, text func(gjson.Result) string) {
	if len(items) == 0 {
		return
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, text(item))
	}
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n")
}

// agentEmails decodes the base64-encoded contact addresses in the agents
// array. Agents without an email field are skipped; a value that fails to
// decode is skipped too rather than killing the run.
func agentEmails(agents gjson.Result) []string {
	var emails []string
	for _, agent := range agents.Array() {
		encoded := agent.Get("email").String()
		if encoded == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			logger.Warn("failed to decode agent email", "value", encoded, "error", err)
			continue
		}
		emails = append(emails, string(decoded))
	}
	return emails
}

// lastPathSegment returns the trailing path segment of a listing URL, the
// slug used as the override-table key.
func lastPathSegment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.TrimSuffix(u.Path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
