package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/rentfinder/rentfinder/internal/listing"
)

func sampleListing() *listing.Listing {
	price := 500.0
	return &listing.Listing{
		Beds:        2,
		Location:    "1/23 Example St, Collingwood VIC 3066",
		Price:       &price,
		AirCon:      listing.Yes,
		RealShower:  listing.No,
		AgentEmails: []string{"agent@example.com"},
		URL:         "https://www.example.com/listing-42",
		Slug:        "listing-42",
	}
}

// --- NewWriter Factory Tests ---

func TestNewWriter_Text(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, FormatText)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if _, ok := w.(*TextWriter); !ok {
		t.Errorf("expected *TextWriter, got %T", w)
	}
}

func TestNewWriter_EmptyFormatDefaultsToText(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, Format(""))
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if _, ok := w.(*TextWriter); !ok {
		t.Errorf("expected *TextWriter, got %T", w)
	}
}

func TestNewWriter_JSON(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if _, ok := w.(*JSONWriter); !ok {
		t.Errorf("expected *JSONWriter, got %T", w)
	}
}

func TestNewWriter_YAML(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, FormatYAML)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if _, ok := w.(*YAMLWriter); !ok {
		t.Errorf("expected *YAMLWriter, got %T", w)
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, Format("csv")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

// --- Text Report Tests ---

func TestTextWriter_ReportBlock(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)

	if err := w.Write(sampleListing()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	wantLines := []string{
		"Address:            1/23 Example St, Collingwood VIC 3066",
		"Beds:               2",
		"Rent:               $500.00",
		"Rent per Bed:       $250.00",
		"Air Conditioning:   ✅",
		"Real Shower:        ❌",
		"Carpeted:           ❓",
		"Secure Entrance:    ❓",
		"Agent Email:        mailto:agent@example.com",
		"URL:                https://www.example.com/listing-42",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("report missing line %q in:\n%s", line, out)
		}
	}
}

func TestTextWriter_RuleWidth(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)
	_ = w.Write(sampleListing())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	rule := strings.Repeat("=", 64)
	if lines[0] != rule {
		t.Errorf("report should open with a 64-char rule, got %q", lines[0])
	}
	if lines[len(lines)-1] != rule {
		t.Errorf("report block should close with a 64-char rule, got %q", lines[len(lines)-1])
	}
}

func TestTextWriter_RuleNotDoubledBetweenBlocks(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTextWriter(buf)
	_ = w.Write(sampleListing())
	_ = w.Write(sampleListing())

	if strings.Contains(buf.String(), strings.Repeat("=", 64)+"\n"+strings.Repeat("=", 64)) {
		t.Error("adjacent blocks should share a single separator rule")
	}
}

func TestTextWriter_ThousandsSeparator(t *testing.T) {
	l := sampleListing()
	price := 1250.0
	l.Price = &price

	buf := &bytes.Buffer{}
	_ = NewTextWriter(buf).Write(l)

	if !strings.Contains(buf.String(), "Rent:               $1,250.00") {
		t.Errorf("expected comma-separated rent, got:\n%s", buf.String())
	}
}

func TestTextWriter_UnknownPrice(t *testing.T) {
	l := sampleListing()
	l.Price = nil

	buf := &bytes.Buffer{}
	_ = NewTextWriter(buf).Write(l)

	out := buf.String()
	if !strings.Contains(out, "Rent:               unknown") {
		t.Errorf("expected unknown rent, got:\n%s", out)
	}
	if !strings.Contains(out, "Rent per Bed:       unknown") {
		t.Errorf("expected unknown rent per bed, got:\n%s", out)
	}
}

func TestTextWriter_WaitingOnEnquiry(t *testing.T) {
	l := sampleListing()
	l.WaitingOnEnquiry = true

	buf := &bytes.Buffer{}
	_ = NewTextWriter(buf).Write(l)

	if !strings.Contains(buf.String(), "Waiting On Enquiry: yes") {
		t.Errorf("expected waiting-on-enquiry line, got:\n%s", buf.String())
	}
}

// --- JSON Writer Tests ---

func TestJSONWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	if err := w.Write(sampleListing()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["airCon"] != "Yes" {
		t.Errorf("airCon = %v, want Yes", records[0]["airCon"])
	}
	if records[0]["pricePerBed"] != 250.0 {
		t.Errorf("pricePerBed = %v, want 250", records[0]["pricePerBed"])
	}
}

func TestJSONWriter_EmptyRun(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty run should produce an empty array, got %q", got)
	}
}

// --- YAML Writer Tests ---

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(sampleListing()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var records []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["slug"] != "listing-42" {
		t.Errorf("slug = %v, want listing-42", records[0]["slug"])
	}
}
