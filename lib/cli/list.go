package cli

import (
	"github.com/daryltucker/rambo/internal/output"
	"github.com/daryltucker/rambo/lib/engine"
)

// writeList prints the registered commands in the requested format.
func (a *app) writeList(dispatcher *engine.Dispatcher) error {
	if a.format == output.FormatText || a.format == "" {
		dispatcher.PrintCommands(a.stdout())
		return nil
	}
	return output.WriteCommands(a.format, a.stdout(), engine.Commands(dispatcher.Registry))
}
