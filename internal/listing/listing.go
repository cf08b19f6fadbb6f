// Package listing holds the rental listing model and the policies applied to
// it: ternary feature answers, acceptance filtering and manual overrides.
package listing

import (
	"encoding/json"
	"fmt"
)

// Answer is a tri-state confidence value for an inferred property feature.
// The zero value is Maybe: no evidence either way.
type Answer int

const (
	Maybe Answer = iota
	No
	Yes
)

// String returns the canonical enum name used in filter and override files.
func (a Answer) String() string {
	switch a {
	case Yes:
		return "Yes"
	case No:
		return "No"
	default:
		return "Maybe"
	}
}

// Glyph renders the answer for the text report.
func (a Answer) Glyph() string {
	switch a {
	case Yes:
		return "✅"
	case No:
		return "❌"
	default:
		return "❓"
	}
}

// ParseAnswer converts an enum name back to an Answer.
func ParseAnswer(s string) (Answer, error) {
	switch s {
	case "Yes":
		return Yes, nil
	case "No":
		return No, nil
	case "Maybe":
		return Maybe, nil
	default:
		return Maybe, fmt.Errorf("unknown answer %q (want Yes, No or Maybe)", s)
	}
}

// MarshalJSON encodes the answer as its enum name.
func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an enum name. Unknown values are an error so that a
// typo in a filter or override file fails before any network activity.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAnswer(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Listing is one scraped rental property snapshot. It is built once by the
// extractor, patched at most once by an override, and read-only afterward.
type Listing struct {
	Beds             int
	Location         string
	Price            *float64 // nil when the advertised price didn't parse
	AirCon           Answer
	RealShower       Answer
	Carpeted         Answer
	SecureEntrance   Answer
	Ignored          bool
	WaitingOnEnquiry bool
	AgentEmails      []string
	URL              string
	Slug             string
}

// PricePerBed derives the per-bed rent. It reports false when the listing has
// no parsed price or zero beds; the value is never stored, always recomputed.
func (l *Listing) PricePerBed() (float64, bool) {
	if l.Price == nil || l.Beds == 0 {
		return 0, false
	}
	return *l.Price / float64(l.Beds), true
}
