package listing

import (
	"encoding/json"
	"fmt"
	"os"
)

// SupplementalData is one manual-override record. Every field is optional: a
// nil pointer leaves the extracted value untouched.
type SupplementalData struct {
	Carpeted         *Answer  `json:"carpeted,omitempty"`
	Beds             *int     `json:"beds,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	AirCon           *Answer  `json:"airCon,omitempty"`
	RealShower       *Answer  `json:"realShower,omitempty"`
	Ignored          *bool    `json:"ignored,omitempty"`
	SecureEntrance   *Answer  `json:"secureEntrance,omitempty"`
	WaitingOnEnquiry *bool    `json:"waitingOnEnquiry,omitempty"`
}

// Overrides maps a listing slug to its manual correction. Loaded once before
// the run begins and read-only afterward.
type Overrides map[string]SupplementalData

// LoadOverrides reads a supplemental data file.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-specified override file
	if err != nil {
		return nil, fmt.Errorf("failed to read supplemental data file: %w", err)
	}

	var o Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse supplemental data file %s: %w", path, err)
	}
	return o, nil
}

// Apply patches the listing with the override keyed by its slug, field by
// field. Listings without an override pass through unchanged. Applying the
// same override twice yields the same listing as applying it once.
func (o Overrides) Apply(l *Listing) {
	sd, ok := o[l.Slug]
	if !ok {
		return
	}

	if sd.Beds != nil {
		l.Beds = *sd.Beds
	}
	if sd.Carpeted != nil {
		l.Carpeted = *sd.Carpeted
	}
	if sd.Price != nil {
		price := *sd.Price
		l.Price = &price
	}
	if sd.AirCon != nil {
		l.AirCon = *sd.AirCon
	}
	if sd.RealShower != nil {
		l.RealShower = *sd.RealShower
	}
	if sd.Ignored != nil {
		l.Ignored = *sd.Ignored
	}
	if sd.SecureEntrance != nil {
		l.SecureEntrance = *sd.SecureEntrance
	}
	if sd.WaitingOnEnquiry != nil {
		l.WaitingOnEnquiry = *sd.WaitingOnEnquiry
	}
}
