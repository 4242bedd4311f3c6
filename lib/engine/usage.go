/*
PURPOSE:
  Renders the application overview and the command table.

ARCHITECTURE INTEGRATION:
  - Called by: Dispatcher.Dispatch (--help), lib/cli (--list, root help)
  - Produces: lib/model.CommandInfo rows for the listing writers
*/

package engine

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/daryltucker/rambo/lib/model"
	"github.com/daryltucker/rambo/lib/discovery"
	"github.com/daryltucker/rambo/lib/handler"
)

// Commands describes every registered handler in discovery order.
func Commands(registry *discovery.Registry) []model.CommandInfo {
	if registry == nil {
		return nil
	}
	var commands []model.CommandInfo
	for _, entry := range registry.Entries() {
		verb, noun, _ := entry.Definition.Identity()
		info := model.CommandInfo{
			Key:         entry.Key,
			Verb:        verb,
			Noun:        noun,
			Kind:        entry.Definition.Kind.String(),
			Description: entry.Definition.Description,
			Location:    entry.Location,
		}
		if entry.Definition.Kind == handler.MultiAction {
			info.Actions = entry.Definition.ActionNames()
		}
		commands = append(commands, info)
	}
	return commands
}

func (d *Dispatcher) usageLine() string {
	return fmt.Sprintf("usage: %s <verb> <noun> [args...]", d.program())
}

// PrintUsage writes the application overview: description, usage line,
// vocabulary and registered commands.
func (d *Dispatcher) PrintUsage(w io.Writer) {
	if desc := d.Config.AppDescription(); desc != "" {
		fmt.Fprintf(w, "%s\n\n", desc)
	}
	fmt.Fprintf(w, "%s\n\n", d.usageLine())
	fmt.Fprintf(w, "Verbs: %s\n", strings.Join(d.Config.Verbs(), ", "))
	fmt.Fprintf(w, "Nouns: %s\n", strings.Join(d.Config.Nouns(), ", "))
	d.PrintCommands(w)
	fmt.Fprintf(w, "\nRun '%s <verb> <noun> --help' for more information on a command.\n", d.program())
}

// PrintCommands writes the registered commands as an aligned table.
func (d *Dispatcher) PrintCommands(w io.Writer) {
	commands := Commands(d.Registry)
	if len(commands) == 0 {
		fmt.Fprintf(w, "\nNo commands are implemented yet.\n")
		return
	}

	fmt.Fprintf(w, "\nCommands:\n")
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, c := range commands {
		summary := c.Description
		if len(c.Actions) > 0 {
			summary = strings.TrimSpace(fmt.Sprintf("%s (actions: %s)", summary, strings.Join(c.Actions, ", ")))
		}
		fmt.Fprintf(tw, "  %s %s\t%s\n", c.Verb, c.Noun, summary)
	}
	tw.Flush()
}
