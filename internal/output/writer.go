package output

import (
	"fmt"
	"io"

	"github.com/daryltucker/rambo/lib/model"
)

// Listing formats accepted by WriteCommands besides the text table, which
// is rendered by the dispatch engine.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// RowWriter is implemented by CSVWriter and JSONWriter.
type RowWriter interface {
	Write(model.CommandInfo) error
	Close() error
}

// NewRowWriter returns the writer for a machine-readable format.
func NewRowWriter(format string, w io.Writer) (RowWriter, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatCSV:
		return NewCSVWriter(w)
	default:
		return nil, fmt.Errorf("unknown listing format %q (want %s or %s)", format, FormatJSON, FormatCSV)
	}
}

// WriteCommands writes every command row in the given format.
func WriteCommands(format string, w io.Writer, commands []model.CommandInfo) error {
	rw, err := NewRowWriter(format, w)
	if err != nil {
		return err
	}
	for _, c := range commands {
		if err := rw.Write(c); err != nil {
			rw.Close()
			return fmt.Errorf("writing %s: %w", c.Key, err)
		}
	}
	return rw.Close()
}
