/*
PURPOSE:
  Writes command listings as CSV.
  Flushes after every row so partial output survives a broken pipe.

REQUIREMENTS:
  User-specified:
  - Machine-readable command listing (rambo --list --format csv).

  Implementation-discovered:
  - Actions are joined with "|" to keep one row per command.

ARCHITECTURE INTEGRATION:
  - Called by: lib/cli
  - Consumes: lib/model.CommandInfo

ERROR HANDLING:
  - Returns error on header or row write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter(os.Stdout)
  w.Write(info)
  w.Close()

RELATED FILES:
  - lib/model/types.go

MAINTENANCE:
  - Update Write() mapping when CommandInfo changes.
*/

package output

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/daryltucker/rambo/lib/model"
)

// CSVWriter handles writing command rows as CSV.
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter creates a new CSVWriter and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.CSVHeader); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return &CSVWriter{writer: cw}, nil
}

// Write writes a single command row.
func (cw *CSVWriter) Write(c model.CommandInfo) error {
	record := []string{
		c.Key,
		c.Verb,
		c.Noun,
		c.Kind,
		strings.Join(c.Actions, "|"),
		c.Description,
		c.Location,
	}
	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close flushes any buffered output.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.writer.Error()
}
