package handler

import (
	"context"
	"reflect"
	"strings"
)

// ActionPrefix marks the methods ActionsFromMethods collects.
const ActionPrefix = "Action"

// ActionsFromMethods builds a MultiAction table from v's exported methods
// named Action<Name> with the ActionFunc signature. The token is <Name> in
// lower case with word breaks as hyphens: ActionBuild is "build",
// ActionBuildAll is "build-all". Methods with other signatures are skipped.
func ActionsFromMethods(v any) map[string]ActionFunc {
	actions := make(map[string]ActionFunc)
	if v == nil {
		return actions
	}

	value := reflect.ValueOf(v)
	methods := value.Type()
	for i := 0; i < methods.NumMethod(); i++ {
		name := methods.Method(i).Name
		if !strings.HasPrefix(name, ActionPrefix) || len(name) == len(ActionPrefix) {
			continue
		}
		fn, ok := value.Method(i).Interface().(func(ctx context.Context, args *Args) error)
		if !ok {
			continue
		}
		token := strings.ReplaceAll(SnakeCase(strings.TrimPrefix(name, ActionPrefix)), "_", "-")
		actions[token] = fn
	}
	return actions
}
