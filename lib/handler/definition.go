/*
PURPOSE:
  Describes one dispatchable handler: its verb/noun identity, its kind and
  its execution entries.

REQUIREMENTS:
  User-specified:
  - A handler named VerbNoun answers "<verb> <noun>".
  - Single-action handlers expose one entry; multi-action handlers expose
    named actions chosen by the token after the noun.

  Implementation-discovered:
  - Explicit Verb/Noun fields avoid relying on naming conventions.
  - Action tokens follow a closed grammar so help output stays readable.

ARCHITECTURE INTEGRATION:
  - Used by: lib/discovery (Validate, Key), lib/engine (Identity, Kind)
  - Related: schema.go, instance.go

ERROR HANDLING:
  - ErrMalformedHandlerName when the key is not exactly verb_noun.
  - ErrInvalidDefinition when kind and entries disagree.

IMPLEMENTATION RULES:
  - Definitions are values; nothing here mutates them.
*/

package handler

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrMalformedHandlerName means a definition's dispatch key does not
	// decompose into exactly one verb and one noun.
	ErrMalformedHandlerName = errors.New("malformed handler name")

	// ErrInvalidDefinition means a definition's kind, action entries or
	// schema are inconsistent.
	ErrInvalidDefinition = errors.New("invalid handler definition")
)

// Kind tags which execution entry a handler exposes.
type Kind int

const (
	// SingleAction handlers expose one Action. Arguments start right after
	// the noun.
	SingleAction Kind = iota + 1

	// MultiAction handlers expose named Actions. The token after the noun
	// selects the action and arguments start after it.
	MultiAction
)

func (k Kind) String() string {
	switch k {
	case SingleAction:
		return "single"
	case MultiAction:
		return "multi"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ActionFunc is an execution entry. args holds the parsed argument schema.
type ActionFunc func(ctx context.Context, args *Args) error

// actionToken is the closed grammar of action names.
var actionToken = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Definition describes one dispatchable handler.
type Definition struct {
	// Name is a CamelCase identifier ("NewProject") the key is derived from
	// when Verb and Noun are both empty.
	Name string

	// Verb and Noun are the explicit dispatch identity.
	Verb string
	Noun string

	// Description is the one-line summary shown in command listings.
	Description string

	// Help is the body shown in this handler's own help output.
	Help string

	Kind Kind

	// Schema declares flags and positionals. Nil means no arguments.
	Schema func(*Schema)

	// Action is the entry of a SingleAction handler.
	Action ActionFunc

	// Actions are the entries of a MultiAction handler, keyed by token.
	Actions map[string]ActionFunc
}

// Identity returns the verb and noun this definition dispatches on.
func (d Definition) Identity() (verb, noun string, err error) {
	if d.Verb != "" || d.Noun != "" {
		for _, word := range []string{d.Verb, d.Noun} {
			if word == "" || strings.ContainsAny(word, "_ \t") {
				return "", "", fmt.Errorf("%w: %s: verb %q and noun %q must both be single non-empty words",
					ErrMalformedHandlerName, d.label(), d.Verb, d.Noun)
			}
		}
		return d.Verb, d.Noun, nil
	}
	if d.Name == "" {
		return "", "", fmt.Errorf("%w: definition has neither a name nor a verb and noun", ErrMalformedHandlerName)
	}
	verb, noun, ok := SplitKey(SnakeCase(d.Name))
	if !ok {
		return "", "", fmt.Errorf("%w: %s derives key %q; names must consist of two words in the format VerbNoun",
			ErrMalformedHandlerName, d.Name, SnakeCase(d.Name))
	}
	return verb, noun, nil
}

// Key returns the "verb_noun" dispatch key.
func (d Definition) Key() (string, error) {
	verb, noun, err := d.Identity()
	if err != nil {
		return "", err
	}
	return verb + "_" + noun, nil
}

// Validate checks the definition can be registered: a well-formed key and
// entries that match its Kind.
func (d Definition) Validate() error {
	key, err := d.Key()
	if err != nil {
		return err
	}

	switch d.Kind {
	case SingleAction:
		if d.Action == nil {
			return fmt.Errorf("%w: %s: single-action handler has no Action", ErrInvalidDefinition, key)
		}
		if len(d.Actions) > 0 {
			return fmt.Errorf("%w: %s: single-action handler declares named Actions", ErrInvalidDefinition, key)
		}
	case MultiAction:
		if d.Action != nil {
			return fmt.Errorf("%w: %s: multi-action handler declares a default Action", ErrInvalidDefinition, key)
		}
		if len(d.Actions) == 0 {
			return fmt.Errorf("%w: %s: multi-action handler has no Actions", ErrInvalidDefinition, key)
		}
		for token, fn := range d.Actions {
			if !actionToken.MatchString(token) {
				return fmt.Errorf("%w: %s: action %q must match %s", ErrInvalidDefinition, key, token, actionToken)
			}
			if fn == nil {
				return fmt.Errorf("%w: %s: action %q has no function", ErrInvalidDefinition, key, token)
			}
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %v", ErrInvalidDefinition, key, d.Kind)
	}

	if _, err := d.buildSchema(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, key, err)
	}
	return nil
}

// ActionNames returns the sorted action tokens of a MultiAction handler.
func (d Definition) ActionNames() []string {
	names := make([]string, 0, len(d.Actions))
	for token := range d.Actions {
		names = append(names, token)
	}
	sort.Strings(names)
	return names
}

// label names the definition in error messages.
func (d Definition) label() string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("%s/%s", d.Verb, d.Noun)
}
