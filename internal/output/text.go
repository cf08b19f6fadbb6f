package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rentfinder/rentfinder/internal/listing"
)

const ruleWidth = 64

// TextWriter prints the labeled console report, one block per listing, each
// block closed by a fixed-width rule.
type TextWriter struct {
	w       io.Writer
	started bool
}

// NewTextWriter creates a text report writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Write prints one report block.
func (t *TextWriter) Write(l *listing.Listing) error {
	if !t.started {
		t.started = true
		if err := t.rule(); err != nil {
			return err
		}
	}

	t.line("Address:", l.Location)
	t.line("Beds:", fmt.Sprintf("%d", l.Beds))
	t.line("Rent:", currency(l.Price))
	if ppb, ok := l.PricePerBed(); ok {
		t.line("Rent per Bed:", currency(&ppb))
	} else {
		t.line("Rent per Bed:", "unknown")
	}
	t.line("Air Conditioning:", l.AirCon.Glyph())
	t.line("Real Shower:", l.RealShower.Glyph())
	t.line("Carpeted:", l.Carpeted.Glyph())
	t.line("Secure Entrance:", l.SecureEntrance.Glyph())
	if l.WaitingOnEnquiry {
		t.line("Waiting On Enquiry:", "yes")
	}
	for _, email := range l.AgentEmails {
		t.line("Agent Email:", "mailto:"+email)
	}
	t.line("URL:", l.URL)
	return t.rule()
}

// Close is a no-op; the text report is unbuffered.
func (t *TextWriter) Close() error {
	return nil
}

func (t *TextWriter) line(label, value string) {
	fmt.Fprintf(t.w, "%-19s %s\n", label, value)
}

func (t *TextWriter) rule() error {
	_, err := fmt.Fprintln(t.w, strings.Repeat("=", ruleWidth))
	return err
}

// currency formats a dollar amount with thousands separators and cents.
func currency(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return "$" + humanize.FormatFloat("#,###.##", *v)
}
