package handler

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func noop(context.Context, *Args) error { return nil }

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"NewProject", "new_project"},
		{"GetUser", "get_user"},
		{"newProject", "new_project"},
		{"New", "new"},
		{"NewBigProject", "new_big_project"},
		{"New_Project", "new__project"},
		{"HTTPGet", "h_t_t_p_get"},
		{"", ""},
	}
	for _, test := range tests {
		if got := SnakeCase(test.name); got != test.want {
			t.Errorf("SnakeCase(%q) = %q, want %q", test.name, got, test.want)
		}
	}
}

func TestDefinition_KeyFromCapitalizedWordPairs(t *testing.T) {
	verbs := []string{"New", "Get", "Delete", "Build"}
	nouns := []string{"Project", "User", "Car"}

	for _, verb := range verbs {
		for _, noun := range nouns {
			def := Definition{Name: verb + noun}
			key, err := def.Key()
			if err != nil {
				t.Fatalf("Key() for %s error: %v", def.Name, err)
			}
			want := strings.ToLower(verb) + "_" + strings.ToLower(noun)
			if key != want {
				t.Errorf("Key() for %s = %q, want %q", def.Name, key, want)
			}
		}
	}
}

func TestDefinition_KeyMalformed(t *testing.T) {
	definitions := []Definition{
		{Name: "New"},
		{Name: "NewBigProject"},
		{Name: "New_Project"},
		{Name: "project"},
		{},
		{Verb: "new"},
		{Verb: "new", Noun: "big_project"},
		{Verb: "", Noun: "project"},
	}
	for _, def := range definitions {
		if _, err := def.Key(); !errors.Is(err, ErrMalformedHandlerName) {
			t.Errorf("Key() for %+v error = %v, want ErrMalformedHandlerName", def, err)
		}
	}
}

func TestDefinition_ExplicitIdentityWins(t *testing.T) {
	def := Definition{Name: "SomethingElseEntirely", Verb: "get", Noun: "user"}
	key, err := def.Key()
	if err != nil {
		t.Fatalf("Key() error: %v", err)
	}
	if key != "get_user" {
		t.Errorf("Key() = %q, want get_user", key)
	}
}

func TestDefinition_ErrorNamesOffender(t *testing.T) {
	_, err := Definition{Name: "NewShinyProject"}.Key()
	if err == nil || !strings.Contains(err.Error(), "NewShinyProject") {
		t.Errorf("error %v should name the definition", err)
	}
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr error
	}{
		{
			name: "single ok",
			def:  Definition{Verb: "new", Noun: "project", Kind: SingleAction, Action: noop},
		},
		{
			name: "multi ok",
			def: Definition{Verb: "get", Noun: "user", Kind: MultiAction,
				Actions: map[string]ActionFunc{"build": noop, "clean-all": noop}},
		},
		{
			name:    "malformed name",
			def:     Definition{Name: "Project", Kind: SingleAction, Action: noop},
			wantErr: ErrMalformedHandlerName,
		},
		{
			name:    "no kind",
			def:     Definition{Verb: "new", Noun: "project", Action: noop},
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "single without action",
			def:     Definition{Verb: "new", Noun: "project", Kind: SingleAction},
			wantErr: ErrInvalidDefinition,
		},
		{
			name: "single with named actions",
			def: Definition{Verb: "new", Noun: "project", Kind: SingleAction, Action: noop,
				Actions: map[string]ActionFunc{"x": noop}},
			wantErr: ErrInvalidDefinition,
		},
		{
			name:    "multi without actions",
			def:     Definition{Verb: "new", Noun: "project", Kind: MultiAction},
			wantErr: ErrInvalidDefinition,
		},
		{
			name: "multi with bad token",
			def: Definition{Verb: "new", Noun: "project", Kind: MultiAction,
				Actions: map[string]ActionFunc{"Build": noop}},
			wantErr: ErrInvalidDefinition,
		},
		{
			name: "multi with nil entry",
			def: Definition{Verb: "new", Noun: "project", Kind: MultiAction,
				Actions: map[string]ActionFunc{"build": nil}},
			wantErr: ErrInvalidDefinition,
		},
		{
			name: "bad schema",
			def: Definition{Verb: "new", Noun: "project", Kind: SingleAction, Action: noop,
				Schema: func(s *Schema) {
					s.OptionalPositional("a", "")
					s.Positional("b", "")
				}},
			wantErr: ErrInvalidDefinition,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.def.Validate()
			if test.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if !errors.Is(err, test.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, test.wantErr)
			}
		})
	}
}

func TestDefinition_ActionNamesSorted(t *testing.T) {
	def := Definition{Actions: map[string]ActionFunc{"clean": noop, "build": noop, "deploy": noop}}
	if got := def.ActionNames(); !slices.Equal(got, []string{"build", "clean", "deploy"}) {
		t.Errorf("ActionNames() = %v", got)
	}
}

type buildTool struct {
	calls []string
}

func (b *buildTool) ActionBuild(ctx context.Context, args *Args) error {
	b.calls = append(b.calls, "build")
	return nil
}

func (b *buildTool) ActionClean(ctx context.Context, args *Args) error {
	b.calls = append(b.calls, "clean")
	return nil
}

func (b *buildTool) ActionBuildAll(ctx context.Context, args *Args) error {
	b.calls = append(b.calls, "build-all")
	return nil
}

// Wrong signature; must be ignored.
func (b *buildTool) ActionReport() string { return "" }

// No prefix; must be ignored.
func (b *buildTool) Build(ctx context.Context, args *Args) error { return nil }

func TestActionsFromMethods(t *testing.T) {
	tool := &buildTool{}
	actions := ActionsFromMethods(tool)

	def := Definition{Actions: actions}
	want := []string{"build", "build-all", "clean"}
	if got := def.ActionNames(); !slices.Equal(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}

	if err := actions["clean"](context.Background(), NewArgs(nil, nil, nil)); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if !slices.Equal(tool.calls, []string{"clean"}) {
		t.Errorf("calls = %v, want [clean]", tool.calls)
	}
}

func TestActionsFromMethods_Nil(t *testing.T) {
	if got := ActionsFromMethods(nil); len(got) != 0 {
		t.Errorf("ActionsFromMethods(nil) = %v, want empty", got)
	}
}

type NewProject struct{}

func TestNameOf(t *testing.T) {
	if got := NameOf(NewProject{}); got != "NewProject" {
		t.Errorf("NameOf(value) = %q", got)
	}
	if got := NameOf(&NewProject{}); got != "NewProject" {
		t.Errorf("NameOf(pointer) = %q", got)
	}
	if got := NameOf(nil); got != "" {
		t.Errorf("NameOf(nil) = %q", got)
	}

	key, err := Definition{Name: NameOf(&NewProject{})}.Key()
	if err != nil || key != "new_project" {
		t.Errorf("Key() = %q, %v; want new_project", key, err)
	}
}
