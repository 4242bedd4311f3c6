/*
PURPOSE:
  Defines the plain data rows shared between the dispatch engine and the
  listing writers.

REQUIREMENTS:
  User-specified:
  - List every registered command with its description.

  Implementation-discovered:
  - Need JSON tags for machine-readable listings.
  - Need a stable column order for CSV.

ARCHITECTURE INTEGRATION:
  - Produced by: lib/engine (Commands)
  - Consumed by: internal/output

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.

RELATED FILES:
  - internal/output/json.go
  - internal/output/csv.go

MAINTENANCE:
  - Update CSVHeader and CSV record mapping when adding fields.
*/

package model

// CommandInfo describes one registered command.
type CommandInfo struct {
	Key         string   `json:"key"`
	Verb        string   `json:"verb"`
	Noun        string   `json:"noun"`
	Kind        string   `json:"kind"`
	Actions     []string `json:"actions,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location"`
}

// CSVHeader is the column order used by the CSV listing writer.
var CSVHeader = []string{"key", "verb", "noun", "kind", "actions", "description", "location"}
