/*
PURPOSE:
  Entry point for the rambo binary. Runs the shared front end with the
  binary's embedded settings and its own handlers.

REQUIREMENTS:
  User-specified:
  - "rambo new project <name>" scaffolds a new application.

  Implementation-discovered:
  - Handlers register at init, so importing internal/commands is enough.

ARCHITECTURE INTEGRATION:
  - Calls: lib/cli.Main()
  - Depends on: internal/commands (settings and handlers)

ERROR HANDLING:
  - cli.Main maps every outcome to an exit code: 1 unimplemented command,
    2 usage, 3 failures.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in lib/ and internal/.

USAGE:
  go build -o rambo ./cmd/rambo
  ./rambo new project demo --install

RELATED FILES:
  - lib/cli/root.go - The root command definition.
  - internal/commands/rambo.yml - The binary's vocabulary.
*/

package main

import (
	"os"

	"github.com/daryltucker/rambo/internal/commands"
	"github.com/daryltucker/rambo/lib/cli"
)

func main() {
	os.Exit(cli.Main(cli.Options{
		Program:    "rambo",
		ConfigData: commands.Settings,
	}))
}
