package engine_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/daryltucker/rambo/lib/config"
	"github.com/daryltucker/rambo/lib/discovery"
	"github.com/daryltucker/rambo/lib/engine"
	"github.com/daryltucker/rambo/lib/handler"
	"github.com/daryltucker/rambo/lib/model"
)

func TestCommands_PublicRows(t *testing.T) {
	cfg, err := config.Parse([]byte(`
rambo:
  app: {name: app}
  entrypoint_paths: [commands]
  terminal: {verbs: [get], nouns: [user]}
`))
	if err != nil {
		t.Fatal(err)
	}
	noop := func(context.Context, *handler.Args) error { return nil }
	catalog := handler.NewCatalog()
	catalog.Register("commands", handler.Definition{
		Name:        "GetUser",
		Description: "show a user",
		Kind:        handler.MultiAction,
		Actions:     map[string]handler.ActionFunc{"show": noop, "list": noop},
	})
	registry, err := discovery.Discover(cfg, discovery.CatalogSource{Catalog: catalog}, nil)
	if err != nil {
		t.Fatal(err)
	}

	rows := engine.Commands(registry)
	want := []model.CommandInfo{{
		Key:         "get_user",
		Verb:        "get",
		Noun:        "user",
		Kind:        "multi",
		Actions:     []string{"list", "show"},
		Description: "show a user",
		Location:    "commands",
	}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Commands() = %+v, want %+v", rows, want)
	}
}
