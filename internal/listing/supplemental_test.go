package listing

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func answerPtr(a Answer) *Answer { return &a }
func boolPtr(b bool) *bool       { return &b }
func intPtr(i int) *int          { return &i }

// --- Apply Tests ---

func TestOverrides_Apply(t *testing.T) {
	o := Overrides{
		"listing-42": {
			Beds:     intPtr(3),
			Price:    floatPtr(450),
			Carpeted: answerPtr(No),
			Ignored:  boolPtr(true),
		},
	}

	l := &Listing{Slug: "listing-42", Beds: 2, Price: floatPtr(500), Carpeted: Maybe, AirCon: Yes}
	o.Apply(l)

	if l.Beds != 3 {
		t.Errorf("Beds = %d, want 3", l.Beds)
	}
	if *l.Price != 450 {
		t.Errorf("Price = %v, want 450", *l.Price)
	}
	if l.Carpeted != No {
		t.Errorf("Carpeted = %v, want No", l.Carpeted)
	}
	if !l.Ignored {
		t.Error("Ignored should be true")
	}
	// Fields absent from the override are untouched.
	if l.AirCon != Yes {
		t.Errorf("AirCon = %v, want Yes (untouched)", l.AirCon)
	}
}

func TestOverrides_Apply_AbsentSlug(t *testing.T) {
	o := Overrides{"other-listing": {Beds: intPtr(99)}}

	l := &Listing{Slug: "listing-42", Beds: 2}
	before := *l
	o.Apply(l)

	if !reflect.DeepEqual(*l, before) {
		t.Errorf("listing changed despite absent override: %+v != %+v", *l, before)
	}
}

func TestOverrides_Apply_Idempotent(t *testing.T) {
	o := Overrides{
		"listing-42": {
			Beds:             intPtr(3),
			Price:            floatPtr(450),
			AirCon:           answerPtr(Yes),
			RealShower:       answerPtr(No),
			SecureEntrance:   answerPtr(Yes),
			WaitingOnEnquiry: boolPtr(true),
		},
	}

	l := &Listing{Slug: "listing-42", Beds: 2, Price: floatPtr(500)}
	o.Apply(l)
	once := *l
	o.Apply(l)

	if !reflect.DeepEqual(*l, once) {
		t.Errorf("applying twice differs from applying once: %+v != %+v", *l, once)
	}
}

// --- LoadOverrides Tests ---

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supplemental.json")
	content := `{
		"listing-42": {"beds": 3, "airCon": "Yes", "ignored": true},
		"listing-43": {"waitingOnEnquiry": true}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides() error = %v", err)
	}
	if len(o) != 2 {
		t.Fatalf("expected 2 override records, got %d", len(o))
	}

	sd := o["listing-42"]
	if sd.Beds == nil || *sd.Beds != 3 {
		t.Errorf("Beds = %v, want 3", sd.Beds)
	}
	if sd.AirCon == nil || *sd.AirCon != Yes {
		t.Errorf("AirCon = %v, want Yes", sd.AirCon)
	}
	if sd.Price != nil {
		t.Error("Price should be unset")
	}
}

func TestLoadOverrides_UnknownEnumValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supplemental.json")
	if err := os.WriteFile(path, []byte(`{"x": {"airCon": "Dunno"}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOverrides(path); err == nil {
		t.Error("expected error for unknown enum value in supplemental data")
	}
}
