/*
PURPOSE:
  Binds a definition to parsed arguments and runs the selected entry.

REQUIREMENTS:
  User-specified:
  - An unknown or missing action lists the valid ones.
  - Handler errors reach the caller unchanged.

ARCHITECTURE INTEGRATION:
  - Called by: lib/engine (Instantiate, ValidateAction, Run)

ERROR HANDLING:
  - *InvalidActionError (ErrInvalidAction) for bad action tokens.
  - Never wraps or recovers from an action's error.
*/

package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAction means a MultiAction handler was invoked with an action
// token it does not declare.
var ErrInvalidAction = errors.New("invalid action")

// InvalidActionError names the rejected token and the valid ones.
type InvalidActionError struct {
	Key    string
	Action string
	Valid  []string
}

func (e *InvalidActionError) Error() string {
	valid := strings.Join(e.Valid, ", ")
	if e.Action == "" {
		return fmt.Sprintf("an action is required for %s, valid actions are: %s", e.Key, valid)
	}
	return fmt.Sprintf("%s is not a valid action for %s, valid actions are: %s", e.Action, e.Key, valid)
}

func (e *InvalidActionError) Unwrap() error { return ErrInvalidAction }

// Instance is a handler whose arguments have been parsed and which is
// ready to run.
type Instance struct {
	def  Definition
	key  string
	args *Args
}

// Instantiate parses tokens against the definition's schema. For a
// SingleAction handler tokens are everything after the noun; for a
// MultiAction handler, everything after the action token.
//
// It returns ErrHelp when the tokens ask for help and a *UsageError when
// they violate the schema.
func (d Definition) Instantiate(tokens []string) (*Instance, error) {
	key, err := d.Key()
	if err != nil {
		return nil, err
	}
	schema, err := d.buildSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, key, err)
	}
	args, err := schema.parse(tokens)
	if err != nil {
		if errors.Is(err, ErrHelp) {
			return nil, ErrHelp
		}
		return nil, &UsageError{Key: key, Err: err}
	}
	return &Instance{def: d, key: key, args: args}, nil
}

// Key is the instance's dispatch key.
func (i *Instance) Key() string { return i.key }

// Definition returns the definition the instance was built from.
func (i *Instance) Definition() Definition { return i.def }

// Args returns the parsed arguments.
func (i *Instance) Args() *Args { return i.args }

// ValidateAction checks action against a MultiAction handler's declared
// tokens. SingleAction handlers accept any value.
func (i *Instance) ValidateAction(action string) error {
	if i.def.Kind != MultiAction {
		return nil
	}
	if _, ok := i.def.Actions[action]; ok {
		return nil
	}
	return &InvalidActionError{Key: i.key, Action: action, Valid: i.def.ActionNames()}
}

// Run invokes the execution entry. action selects the entry of a
// MultiAction handler and is ignored otherwise. Errors returned by the
// entry are passed through unchanged.
func (i *Instance) Run(ctx context.Context, action string) error {
	if i.def.Kind == SingleAction {
		return i.def.Action(ctx, i.args)
	}
	if err := i.ValidateAction(action); err != nil {
		return err
	}
	return i.def.Actions[action](ctx, i.args)
}
