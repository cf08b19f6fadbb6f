package listing

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Filter is a declarative acceptance policy over listings, loaded once per run
// and immutable afterward.
type Filter struct {
	MaxPricePerBed            float64  `json:"maxPricePerBed" validate:"required,gt=0"`
	MaxPriceOneBed            float64  `json:"maxPriceOneBed" validate:"omitempty,gt=0"`
	AcceptableAirCons         []Answer `json:"acceptableAirCons" validate:"required,min=1"`
	AcceptableRealShowers     []Answer `json:"acceptableRealShowers" validate:"required,min=1"`
	AcceptableCarpets         []Answer `json:"acceptableCarpets" validate:"required,min=1"`
	AcceptableSecureEntrances []Answer `json:"acceptableSecureEntrances" validate:"required,min=1"`
}

// LoadFilter reads and validates a filter file. A malformed file (including an
// unknown Answer value) is fatal before any network activity.
func LoadFilter(path string) (*Filter, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-specified filter file
	if err != nil {
		return nil, fmt.Errorf("failed to read filter file: %w", err)
	}

	var f Filter
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse filter file %s: %w", path, err)
	}
	if err := validator.New().Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid filter file %s: %w", path, err)
	}
	return &f, nil
}

// Matches reports whether the listing passes the filter. A nil filter accepts
// everything. The ignored veto is checked before anything else; a listing
// marked ignored is rejected no matter what its other fields say.
func (f *Filter) Matches(l *Listing) bool {
	if f == nil {
		return true
	}
	if l.Ignored {
		return false
	}

	priceOk := false
	if ppb, ok := l.PricePerBed(); ok {
		priceOk = ppb <= f.MaxPricePerBed
	}
	// Single-bed units get an alternate, typically looser, threshold.
	if l.Beds == 1 && l.Price != nil {
		priceOk = priceOk || *l.Price <= f.MaxPriceOneBed
	}

	match := priceOk
	match = match && containsAnswer(f.AcceptableAirCons, l.AirCon)
	match = match && containsAnswer(f.AcceptableRealShowers, l.RealShower)
	match = match && containsAnswer(f.AcceptableCarpets, l.Carpeted)
	match = match && containsAnswer(f.AcceptableSecureEntrances, l.SecureEntrance)
	return match
}

func containsAnswer(set []Answer, a Answer) bool {
	for _, v := range set {
		if v == a {
			return true
		}
	}
	return false
}
