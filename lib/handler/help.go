package handler

import (
	"fmt"
	"strings"
)

// Usage returns the usage line for the definition, e.g.
// "usage: rambo new project [flags] project_name".
func (d Definition) Usage(program string) string {
	verb, noun, err := d.Identity()
	if err != nil {
		return "usage: " + program
	}
	parts := []string{"usage:", program, verb, noun}
	if d.Kind == MultiAction {
		parts = append(parts, "{"+strings.Join(d.ActionNames(), ",")+"}")
	}
	if schema, err := d.buildSchema(); err == nil {
		if synopsis := schema.synopsis(); synopsis != "" {
			parts = append(parts, synopsis)
		}
	}
	return strings.Join(parts, " ")
}

// Help renders the full help text for the definition: description, usage,
// the available actions of a MultiAction handler, the help body, then the
// positional and flag descriptions.
func Help(d Definition, program string) string {
	var b strings.Builder

	if d.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", d.Description)
	}
	fmt.Fprintf(&b, "%s\n", d.Usage(program))

	if d.Kind == MultiAction {
		key, _ := d.Key()
		fmt.Fprintf(&b, "\navailable actions for command %s\n", key)
		for _, action := range d.ActionNames() {
			fmt.Fprintf(&b, "-> %s\n", action)
		}
	}

	if body := strings.TrimSpace(d.Help); body != "" {
		fmt.Fprintf(&b, "\n%s\n", body)
	}

	schema, err := d.buildSchema()
	if err != nil {
		return b.String()
	}
	if len(schema.positionals) > 0 {
		fmt.Fprintf(&b, "\nArguments:\n")
		for _, p := range schema.positionals {
			fmt.Fprintf(&b, "  %-20s %s\n", p.name, p.usage)
		}
	}
	if schema.flags.HasFlags() {
		fmt.Fprintf(&b, "\nFlags:\n%s", schema.flags.FlagUsages())
	}
	return b.String()
}
