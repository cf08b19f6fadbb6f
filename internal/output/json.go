package output

import (
	"encoding/json"
	"io"

	"github.com/rentfinder/rentfinder/internal/listing"
)

// JSONWriter buffers listings and emits one pretty-printed array on Close.
type JSONWriter struct {
	w       io.Writer
	records []record
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// Write buffers one listing.
func (j *JSONWriter) Write(l *listing.Listing) error {
	j.records = append(j.records, toRecord(l))
	return nil
}

// Close writes the buffered listings as a JSON array. A run with no accepted
// listings produces an empty array, not null.
func (j *JSONWriter) Close() error {
	if j.records == nil {
		j.records = []record{}
	}
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.records)
}
