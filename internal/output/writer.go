// Package output renders accepted listings: the labeled text report, or
// machine-readable JSON/YAML.
package output

import (
	"fmt"
	"io"

	"github.com/rentfinder/rentfinder/internal/listing"
)

// Format represents output format types.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Writer emits accepted listings one at a time, in the order the scraper
// found them.
type Writer interface {
	// Write outputs a single listing.
	Write(l *listing.Listing) error

	// Close flushes any buffered output and releases resources.
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// record is the serialized listing shape shared by the JSON and YAML writers.
type record struct {
	Address          string   `json:"address" yaml:"address"`
	Beds             int      `json:"beds" yaml:"beds"`
	Price            *float64 `json:"price" yaml:"price"`
	PricePerBed      *float64 `json:"pricePerBed" yaml:"pricePerBed"`
	AirCon           string   `json:"airCon" yaml:"airCon"`
	RealShower       string   `json:"realShower" yaml:"realShower"`
	Carpeted         string   `json:"carpeted" yaml:"carpeted"`
	SecureEntrance   string   `json:"secureEntrance" yaml:"secureEntrance"`
	WaitingOnEnquiry bool     `json:"waitingOnEnquiry,omitempty" yaml:"waitingOnEnquiry,omitempty"`
	AgentEmails      []string `json:"agentEmails,omitempty" yaml:"agentEmails,omitempty"`
	URL              string   `json:"url" yaml:"url"`
	Slug             string   `json:"slug" yaml:"slug"`
}

func toRecord(l *listing.Listing) record {
	r := record{
		Address:          l.Location,
		Beds:             l.Beds,
		Price:            l.Price,
		AirCon:           l.AirCon.String(),
		RealShower:       l.RealShower.String(),
		Carpeted:         l.Carpeted.String(),
		SecureEntrance:   l.SecureEntrance.String(),
		WaitingOnEnquiry: l.WaitingOnEnquiry,
		AgentEmails:      l.AgentEmails,
		URL:              l.URL,
		Slug:             l.Slug,
	}
	if ppb, ok := l.PricePerBed(); ok {
		r.PricePerBed = &ppb
	}
	return r
}
