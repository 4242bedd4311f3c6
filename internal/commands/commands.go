// Package commands holds the rambo binary's own handlers. Importing it
// registers them in handler.DefaultCatalog under Location.
package commands

import (
	_ "embed"

	"github.com/daryltucker/rambo/lib/handler"
)

// Location is the catalog name listed in rambo.yml.
const Location = "commands"

// Settings is the rambo binary's settings document.
//
//go:embed rambo.yml
var Settings []byte

func init() {
	handler.Register(Location, (&NewProject{}).Definition())
}
