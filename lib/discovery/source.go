/*
PURPOSE:
  Where handler definitions come from: the init-time catalog, directories
  of Go plugins, or a chain of both.

REQUIREMENTS:
  User-specified:
  - Each configured entrypoint path is a handler location.

  Implementation-discovered:
  - Go has no runtime module import, so locations are catalog names
    filled from init, with plugin directories as the dynamic fallback.
  - Plugin directories are scanned one level deep, in name order.

ARCHITECTURE INTEGRATION:
  - Used by: lib/discovery.Discoverer, lib/cli
  - Depends on: lib/handler (Catalog, Definition)

ERROR HANDLING:
  - ErrLocationNotFound lets Chain try the next source.
  - Plugin open or symbol failures are returned with the file path.
*/

package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"sort"

	"github.com/daryltucker/rambo/lib/handler"
)

// ErrLocationNotFound is returned by a Source that knows nothing about a
// location. Chain moves on to the next source when it sees it.
var ErrLocationNotFound = errors.New("handler location not found")

// Source loads the handler definitions available at a location.
type Source interface {
	Load(location string) ([]handler.Definition, error)
}

// CatalogSource serves locations from a handler catalog populated by
// init-time registration.
type CatalogSource struct {
	Catalog *handler.Catalog
}

// Load returns the definitions registered under location.
func (s CatalogSource) Load(location string) ([]handler.Definition, error) {
	catalog := s.Catalog
	if catalog == nil {
		catalog = handler.DefaultCatalog
	}
	defs, ok := catalog.Definitions(location)
	if !ok {
		return nil, fmt.Errorf("%w: nothing is registered under %q", ErrLocationNotFound, location)
	}
	return defs, nil
}

// PluginSymbol is the function a handler plugin exports.
const PluginSymbol = "Handlers"

// PluginSource treats a location as a directory of Go plugins. Every *.so
// file directly inside it (not recursively) is opened and its exported
// Handlers function, of type func() []handler.Definition, is called.
type PluginSource struct {
	// Root resolves relative locations. Empty means the working directory.
	Root string
}

// Load opens the plugins in the location's directory in name order.
func (s PluginSource) Load(location string) ([]handler.Definition, error) {
	dir := location
	if !filepath.IsAbs(dir) && s.Root != "" {
		dir = filepath.Join(s.Root, dir)
	}

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no directory at %s", ErrLocationNotFound, dir)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.so"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var defs []handler.Definition
	for _, path := range matches {
		loaded, err := openPlugin(path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}
	return defs, nil
}

func openPlugin(path string) ([]handler.Definition, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening plugin %s: %w", path, err)
	}
	sym, err := p.Lookup(PluginSymbol)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", path, err)
	}
	handlers, ok := sym.(func() []handler.Definition)
	if !ok {
		return nil, fmt.Errorf("plugin %s: %s has type %T, want func() []handler.Definition", path, PluginSymbol, sym)
	}
	return handlers(), nil
}

// Chain tries each source in order until one knows the location.
type Chain []Source

// Load returns the first answer that is not ErrLocationNotFound.
func (c Chain) Load(location string) ([]handler.Definition, error) {
	for _, source := range c {
		defs, err := source.Load(location)
		if errors.Is(err, ErrLocationNotFound) {
			continue
		}
		return defs, err
	}
	return nil, fmt.Errorf("%w: %q is neither a registered location nor a plugin directory", ErrLocationNotFound, location)
}
