package handler

import (
	"slices"
	"sync"
)

// Catalog collects handler definitions by location. Handler packages
// register into it from init; discovery reads it afterwards.
type Catalog struct {
	mu          sync.Mutex
	locations   []string
	definitions map[string][]Definition
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{definitions: make(map[string][]Definition)}
}

// DefaultCatalog is the process-wide catalog used by Register.
var DefaultCatalog = NewCatalog()

// Register adds definitions to the default catalog under location.
func Register(location string, definitions ...Definition) {
	DefaultCatalog.Register(location, definitions...)
}

// Register adds definitions under location. Registering a location with no
// definitions still makes the location known. Definitions are validated
// at discovery, not here.
func (c *Catalog) Register(location string, definitions ...Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.definitions[location]; !ok {
		c.locations = append(c.locations, location)
		c.definitions[location] = nil
	}
	c.definitions[location] = append(c.definitions[location], definitions...)
}

// Definitions returns the definitions registered under location, in
// registration order. ok is false for a location nothing registered.
func (c *Catalog) Definitions(location string) (definitions []Definition, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defs, ok := c.definitions[location]
	return slices.Clone(defs), ok
}

// Locations returns the known locations in first-registration order.
func (c *Catalog) Locations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.locations)
}
