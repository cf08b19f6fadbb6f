package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rentfinder/rentfinder/internal/listing"
)

// YAMLWriter buffers listings and emits one YAML sequence on Close.
type YAMLWriter struct {
	w       io.Writer
	records []record
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: w}
}

// Write buffers one listing.
func (y *YAMLWriter) Write(l *listing.Listing) error {
	y.records = append(y.records, toRecord(l))
	return nil
}

// Close writes the buffered listings as a YAML sequence.
func (y *YAMLWriter) Close() error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(y.records); err != nil {
		return err
	}
	return enc.Close()
}
