/*
PURPOSE:
  Declares and parses a handler's arguments: pflag flags plus named
  positionals.

REQUIREMENTS:
  User-specified:
  - Handlers declare their own arguments.
  - Missing or extra arguments are usage errors naming the problem.

  Implementation-discovered:
  - pflag runs with ContinueOnError and discarded output; the engine
    renders every message itself.
  - Declaration mistakes are recorded and surfaced at Instantiate.

ARCHITECTURE INTEGRATION:
  - Called by: Definition.Instantiate, Usage, Help
  - Depends on: github.com/spf13/pflag

ERROR HANDLING:
  - ErrHelp for -h/--help.
  - *UsageError wraps parse failures.

RELATED FILES:
  - lib/handler/instance.go
  - lib/handler/help.go
*/

package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by Instantiate when the arguments ask for help.
var ErrHelp = errors.New("help requested")

// UsageError reports arguments that do not satisfy a handler's schema.
type UsageError struct {
	Key string
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

type positional struct {
	name     string
	usage    string
	required bool
	rest     bool
}

// Schema is a handler's argument declaration: pflag flags plus named
// positionals in order.
type Schema struct {
	flags       *pflag.FlagSet
	positionals []positional
	err         error
}

func newSchema(name string) *Schema {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	return &Schema{flags: flagSet}
}

// Flags returns the flag set to declare flags on.
func (s *Schema) Flags() *pflag.FlagSet { return s.flags }

// Positional declares a required positional argument.
func (s *Schema) Positional(name, usage string) {
	if len(s.positionals) > 0 {
		last := s.positionals[len(s.positionals)-1]
		if !last.required && !last.rest {
			s.fail(fmt.Errorf("required positional %q follows optional %q", name, last.name))
			return
		}
	}
	s.add(positional{name: name, usage: usage, required: true})
}

// OptionalPositional declares a positional argument that may be omitted.
func (s *Schema) OptionalPositional(name, usage string) {
	s.add(positional{name: name, usage: usage})
}

// Remaining collects every positional left after the declared ones.
func (s *Schema) Remaining(name, usage string) {
	s.add(positional{name: name, usage: usage, rest: true})
}

func (s *Schema) add(p positional) {
	for _, existing := range s.positionals {
		if existing.name == p.name {
			s.fail(fmt.Errorf("positional %q declared twice", p.name))
			return
		}
		if existing.rest {
			s.fail(fmt.Errorf("positional %q follows remaining arguments %q", p.name, existing.name))
			return
		}
	}
	s.positionals = append(s.positionals, p)
}

func (s *Schema) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// buildSchema runs the definition's Schema function on a fresh Schema.
func (d Definition) buildSchema() (*Schema, error) {
	key, err := d.Key()
	if err != nil {
		return nil, err
	}
	schema := newSchema(key)
	if d.Schema != nil {
		d.Schema(schema)
	}
	if schema.err != nil {
		return nil, schema.err
	}
	return schema, nil
}

// parse binds tokens to the schema.
func (s *Schema) parse(tokens []string) (*Args, error) {
	if err := s.flags.Parse(tokens); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, err
	}

	remaining := s.flags.Args()
	args := &Args{flags: s.flags, values: make(map[string]string)}
	for _, p := range s.positionals {
		if p.rest {
			args.rest = remaining
			remaining = nil
			break
		}
		if len(remaining) == 0 {
			if p.required {
				return nil, fmt.Errorf("the following arguments are required: %s", s.missing())
			}
			break
		}
		args.values[p.name] = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return nil, fmt.Errorf("unrecognized arguments: %s", strings.Join(remaining, " "))
	}
	return args, nil
}

// missing lists the required positionals as a comma-separated string.
func (s *Schema) missing() string {
	var names []string
	for _, p := range s.positionals {
		if p.required {
			names = append(names, p.name)
		}
	}
	return strings.Join(names, ", ")
}

// synopsis renders the positional part of a usage line.
func (s *Schema) synopsis() string {
	var parts []string
	if s.flags.HasFlags() {
		parts = append(parts, "[flags]")
	}
	for _, p := range s.positionals {
		switch {
		case p.rest:
			parts = append(parts, "["+p.name+"...]")
		case p.required:
			parts = append(parts, p.name)
		default:
			parts = append(parts, "["+p.name+"]")
		}
	}
	return strings.Join(parts, " ")
}

// Args holds a handler's parsed arguments.
type Args struct {
	flags  *pflag.FlagSet
	values map[string]string
	rest   []string
}

// NewArgs builds Args directly, for calling action functions in tests.
func NewArgs(flags *pflag.FlagSet, positionals map[string]string, rest []string) *Args {
	if flags == nil {
		flags = pflag.NewFlagSet("args", pflag.ContinueOnError)
	}
	if positionals == nil {
		positionals = make(map[string]string)
	}
	return &Args{flags: flags, values: positionals, rest: rest}
}

// Flags returns the parsed flag set.
func (a *Args) Flags() *pflag.FlagSet { return a.flags }

// Arg returns the named positional, or "" when it was not given.
func (a *Args) Arg(name string) string { return a.values[name] }

// Has reports whether the named positional was given.
func (a *Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Rest returns the arguments collected by a Remaining declaration.
func (a *Args) Rest() []string { return a.rest }

// String returns a string flag value, or "" if no such flag is declared.
func (a *Args) String(name string) string {
	v, _ := a.flags.GetString(name)
	return v
}

// Bool returns a bool flag value, or false if no such flag is declared.
func (a *Args) Bool(name string) bool {
	v, _ := a.flags.GetBool(name)
	return v
}

// Int returns an int flag value, or 0 if no such flag is declared.
func (a *Args) Int(name string) int {
	v, _ := a.flags.GetInt(name)
	return v
}

// StringSlice returns a string slice flag value.
func (a *Args) StringSlice(name string) []string {
	v, _ := a.flags.GetStringSlice(name)
	return v
}

// Changed reports whether the flag was set on the command line.
func (a *Args) Changed(name string) bool { return a.flags.Changed(name) }
