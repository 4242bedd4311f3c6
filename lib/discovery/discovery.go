/*
PURPOSE:
  Builds the dispatch registry: loads the handler definitions of every
  configured location and maps each dispatch key to exactly one handler.

REQUIREMENTS:
  User-specified:
  - Locations are searched in declared order.
  - Two handlers with the same key is an error, never last-wins.
  - A location that cannot be loaded aborts the build.

  Implementation-discovered:
  - Handlers register themselves from init (handler.Register); a location
    is a registration name or a directory of Go plugins.
  - Verbs and nouns are checked against the vocabulary here so a typo in a
    handler shows up at startup instead of as "not implemented".

ARCHITECTURE INTEGRATION:
  - Called by: lib/cli
  - Produces: *Registry consumed by lib/engine

ERROR HANDLING:
  - Every failure is returned; there is no partial registry.

IMPLEMENTATION RULES:
  - No caching. Every process builds the registry again.

RELATED FILES:
  - lib/discovery/source.go
  - lib/handler/catalog.go
*/

package discovery

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/daryltucker/rambo/lib/config"
	"github.com/daryltucker/rambo/lib/handler"
)

var (
	// ErrDuplicateHandlerKey means two handlers derive the same dispatch key.
	ErrDuplicateHandlerKey = errors.New("duplicate handler key")

	// ErrHandlerLoad means a location could not be loaded.
	ErrHandlerLoad = errors.New("handler load error")

	// ErrOutsideVocabulary means a handler's verb or noun is not in the
	// configured vocabulary, so no invocation could ever reach it.
	ErrOutsideVocabulary = errors.New("handler outside configured vocabulary")
)

// LoadError wraps the cause of a location failing to load.
type LoadError struct {
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v: location %q: %v", ErrHandlerLoad, e.Location, e.Err)
}

// Unwrap exposes both ErrHandlerLoad and the underlying cause.
func (e *LoadError) Unwrap() []error { return []error{ErrHandlerLoad, e.Err} }

// Entry is one registered handler.
type Entry struct {
	Key        string
	Location   string
	Definition handler.Definition
}

// Registry maps dispatch keys to handlers. It is read-only once built.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Lookup returns the handler registered under key.
func (r *Registry) Lookup(key string) (Entry, bool) {
	entry, ok := r.entries[key]
	return entry, ok
}

// Keys returns the registered keys in discovery order.
func (r *Registry) Keys() []string { return slices.Clone(r.order) }

// Entries returns the registered handlers in discovery order.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		entries = append(entries, r.entries[key])
	}
	return entries
}

// Len is the number of registered handlers.
func (r *Registry) Len() int { return len(r.order) }

// add validates def and inserts it.
func (r *Registry) add(location string, def handler.Definition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("location %q: %w", location, err)
	}
	key, _ := def.Key()
	if existing, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %q is claimed by handlers in %q and %q",
			ErrDuplicateHandlerKey, key, existing.Location, location)
	}
	r.entries[key] = Entry{Key: key, Location: location, Definition: def}
	r.order = append(r.order, key)
	return nil
}

// Discoverer builds registries from a Source.
type Discoverer struct {
	Source Source

	// Verbs and Nouns, when set, restrict which identities may register.
	Verbs []string
	Nouns []string

	Logger *slog.Logger
}

// Discover loads every location in order and builds a registry.
func (d *Discoverer) Discover(locations []string) (*Registry, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	source := d.Source
	if source == nil {
		source = CatalogSource{}
	}

	registry := NewRegistry()
	for _, location := range locations {
		defs, err := source.Load(location)
		if err != nil {
			return nil, &LoadError{Location: location, Err: err}
		}
		logger.Debug("loaded handler location", "location", location, "handlers", len(defs))

		for _, def := range defs {
			if err := d.checkVocabulary(location, def); err != nil {
				return nil, err
			}
			if err := registry.add(location, def); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("registry built", "handlers", registry.Len())
	return registry, nil
}

func (d *Discoverer) checkVocabulary(location string, def handler.Definition) error {
	verb, noun, err := def.Identity()
	if err != nil {
		return fmt.Errorf("location %q: %w", location, err)
	}
	if len(d.Verbs) > 0 && !slices.Contains(d.Verbs, verb) {
		return fmt.Errorf("%w: location %q: verb %q of %s_%s is not one of %v",
			ErrOutsideVocabulary, location, verb, verb, noun, d.Verbs)
	}
	if len(d.Nouns) > 0 && !slices.Contains(d.Nouns, noun) {
		return fmt.Errorf("%w: location %q: noun %q of %s_%s is not one of %v",
			ErrOutsideVocabulary, location, noun, verb, noun, d.Nouns)
	}
	return nil
}

// Discover builds the registry for cfg's entrypoint paths and vocabulary.
func Discover(cfg *config.Config, source Source, logger *slog.Logger) (*Registry, error) {
	d := &Discoverer{
		Source: source,
		Verbs:  cfg.Verbs(),
		Nouns:  cfg.Nouns(),
		Logger: logger,
	}
	return d.Discover(cfg.EntrypointPaths())
}
