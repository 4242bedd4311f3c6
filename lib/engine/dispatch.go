/*
PURPOSE:
  Routes one invocation to its handler and maps the outcome to a process
  exit code.

REQUIREMENTS:
  User-specified:
  - "<app> <verb> <noun> [args]" resolves to the handler for "verb_noun".
  - Unknown verb or noun is a grammar error listing the allowed words.
  - Known grammar without a handler exits 1 with "not yet implemented".
  - Multi-action handlers take an action token after the noun.

  Implementation-discovered:
  - Handler argument parsing happens before the env file is loaded, so
    "--help" works without a .env present.
  - Suggest the closest word on typos (edit distance, see suggest.go).

ARCHITECTURE INTEGRATION:
  - Called by: lib/cli
  - Calls: lib/handler (Instantiate, Run), lib/bootstrap
  - Depends on: lib/config, lib/discovery

ERROR HANDLING:
  - Grammar, unimplemented, usage and invalid-action outcomes are written
    to Stderr and returned as exit codes with a nil error.
  - Bootstrap and handler errors are returned unchanged with ExitFailure.

IMPLEMENTATION RULES:
  - Never recover from or rewrap a handler's error.
  - Grammar is checked before the registry is consulted.

RELATED FILES:
  - lib/engine/exit.go
  - lib/engine/usage.go
*/

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/daryltucker/rambo/lib/bootstrap"
	"github.com/daryltucker/rambo/lib/config"
	"github.com/daryltucker/rambo/lib/discovery"
	"github.com/daryltucker/rambo/lib/handler"
)

var (
	// ErrGrammarMismatch means the verb or noun token is not in the
	// configured vocabulary.
	ErrGrammarMismatch = errors.New("grammar mismatch")

	// ErrUnimplementedCommand means the grammar is valid but no handler is
	// registered for the key.
	ErrUnimplementedCommand = errors.New("not yet implemented")
)

// NotImplementedMessage is printed for valid grammar with no handler.
const NotImplementedMessage = "invalid command. Not yet implemented, try again."

// GrammarError describes a rejected verb or noun token.
type GrammarError struct {
	// Argument is "verb" or "noun".
	Argument   string
	Token      string
	Allowed    []string
	Suggestion string
}

func (e *GrammarError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("the following arguments are required: %s", e.Argument)
	}
	quoted := make([]string, len(e.Allowed))
	for i, word := range e.Allowed {
		quoted[i] = "'" + word + "'"
	}
	msg := fmt.Sprintf("argument %s: invalid choice: '%s' (choose from %s)",
		e.Argument, e.Token, strings.Join(quoted, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *GrammarError) Unwrap() error { return ErrGrammarMismatch }

// Dispatcher resolves invocations against a configuration and registry.
type Dispatcher struct {
	Config   *config.Config
	Registry *discovery.Registry

	// Program is the name shown in usage lines. Defaults to the app name.
	Program string

	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Bootstrap runs after argument parsing and before the handler.
	// Defaults to bootstrap.MaybeLoadEnvironment.
	Bootstrap func(*config.Config) error
}

// Resolve parses the verb and noun tokens and looks up their handler. It
// returns a *GrammarError (ErrGrammarMismatch) for tokens outside the
// vocabulary and ErrUnimplementedCommand for a key with no handler.
func (d *Dispatcher) Resolve(tokens []string) (discovery.Entry, error) {
	verb, noun := "", ""
	if len(tokens) > 0 {
		verb = tokens[0]
	}
	if len(tokens) > 1 {
		noun = tokens[1]
	}

	verbs, nouns := d.Config.Verbs(), d.Config.Nouns()
	if verb == "" || !d.Config.HasVerb(verb) {
		return discovery.Entry{}, &GrammarError{Argument: "verb", Token: verb, Allowed: verbs, Suggestion: suggest(verb, verbs)}
	}
	if noun == "" || !d.Config.HasNoun(noun) {
		return discovery.Entry{}, &GrammarError{Argument: "noun", Token: noun, Allowed: nouns, Suggestion: suggest(noun, nouns)}
	}

	key := verb + "_" + noun
	if d.Registry != nil {
		if entry, ok := d.Registry.Lookup(key); ok {
			return entry, nil
		}
	}
	return discovery.Entry{}, fmt.Errorf("%s: %w", key, ErrUnimplementedCommand)
}

// Dispatch runs one invocation. tokens excludes the program name.
func (d *Dispatcher) Dispatch(ctx context.Context, tokens []string) (ExitCode, error) {
	stdout, stderr := d.stdout(), d.stderr()
	logger := d.logger()
	program := d.program()

	if len(tokens) > 0 && isHelpFlag(tokens[0]) {
		d.PrintUsage(stdout)
		return ExitOK, nil
	}

	entry, err := d.Resolve(tokens)
	switch {
	case errors.Is(err, ErrUnimplementedCommand):
		logger.Debug("no handler registered", "error", err)
		fmt.Fprintln(stderr, NotImplementedMessage)
		return ExitNotImplemented, nil
	case err != nil:
		fmt.Fprintf(stderr, "%s\n%s: error: %v\n", d.usageLine(), program, err)
		return ExitUsage, nil
	}

	def := entry.Definition
	argStart, action := 2, ""
	if def.Kind == handler.MultiAction && len(tokens) > 2 {
		action, argStart = tokens[2], 3
		if isHelpFlag(action) {
			fmt.Fprint(stdout, handler.Help(def, program))
			return ExitOK, nil
		}
	}
	logger.Debug("dispatching", "key", entry.Key, "location", entry.Location, "action", action)

	instance, err := def.Instantiate(tokens[argStart:])
	if errors.Is(err, handler.ErrHelp) {
		fmt.Fprint(stdout, handler.Help(def, program))
		return ExitOK, nil
	}
	var usageErr *handler.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "%s\n%s: error: %v\n", def.Usage(program), program, usageErr.Err)
		return ExitUsage, nil
	}
	if err != nil {
		return ExitFailure, err
	}

	if err := d.bootstrap()(d.Config); err != nil {
		return ExitFailure, err
	}

	if err := instance.ValidateAction(action); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage, nil
	}

	if err := instance.Run(ctx, action); err != nil {
		logger.Debug("handler failed", "key", entry.Key, "error", err)
		return ExitFailure, err
	}
	return ExitOK, nil
}

func (d *Dispatcher) program() string {
	if d.Program != "" {
		return d.Program
	}
	return d.Config.AppName()
}

func (d *Dispatcher) stdout() io.Writer {
	if d.Stdout != nil {
		return d.Stdout
	}
	return os.Stdout
}

func (d *Dispatcher) stderr() io.Writer {
	if d.Stderr != nil {
		return d.Stderr
	}
	return os.Stderr
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d *Dispatcher) bootstrap() func(*config.Config) error {
	if d.Bootstrap != nil {
		return d.Bootstrap
	}
	return bootstrap.MaybeLoadEnvironment
}

// isHelpFlag matches only flag spellings. A bare "help" is a valid verb,
// noun or action token and must reach the registry.
func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}
