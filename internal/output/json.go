/*
PURPOSE:
  Writes command listings as JSON Lines (one object per command).

ARCHITECTURE INTEGRATION:
  - Called by: lib/cli
  - Consumes: lib/model.CommandInfo

IMPLEMENTATION RULES:
  - One Encode per row; no enclosing array, so output can be streamed to jq.
*/

package output

import (
	"encoding/json"
	"io"

	"github.com/daryltucker/rambo/lib/model"
)

// JSONWriter handles writing command rows as JSON Lines.
type JSONWriter struct {
	encoder *json.Encoder
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{encoder: json.NewEncoder(w)}
}

// Write writes a single command as a JSON line.
func (jw *JSONWriter) Write(c model.CommandInfo) error {
	return jw.encoder.Encode(c)
}

// Close is a no-op kept so both writers share a shape.
func (jw *JSONWriter) Close() error { return nil }
