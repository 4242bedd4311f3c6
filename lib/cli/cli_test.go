package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daryltucker/rambo/lib/config"
	"github.com/daryltucker/rambo/lib/discovery"
	"github.com/daryltucker/rambo/lib/engine"
	"github.com/daryltucker/rambo/lib/handler"
)

const testSettings = `
rambo:
  app:
    name: first_blood
  entrypoint_paths: [commands]
  terminal:
    verbs: [new, get]
    nouns: [project, user]
`

var errBoom = errors.New("boom")

type fixture struct {
	opts   Options
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	calls  []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}

	catalog := handler.NewCatalog()
	catalog.Register("commands",
		handler.Definition{
			Name:        "NewProject",
			Description: "create a new project",
			Kind:        handler.SingleAction,
			Schema: func(s *handler.Schema) {
				s.Positional("project_name", "name of the project")
			},
			Action: func(_ context.Context, args *handler.Args) error {
				f.calls = append(f.calls, "new:"+args.Arg("project_name"))
				return nil
			},
		},
		handler.Definition{
			Name: "GetProject",
			Kind: handler.SingleAction,
			Action: func(context.Context, *handler.Args) error {
				return errBoom
			},
		},
	)

	f.opts = Options{
		ConfigData: []byte(testSettings),
		Source:     discovery.CatalogSource{Catalog: catalog},
		Stdout:     f.stdout,
		Stderr:     f.stderr,
	}
	return f
}

func (f *fixture) execute(args ...string) error {
	return ExecuteArgs(context.Background(), f.opts, args)
}

func wantExitCode(t *testing.T, err error, want engine.ExitCode) {
	t.Helper()
	var exitErr *engine.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *engine.ExitError", err)
	}
	if exitErr.Code != want {
		t.Errorf("exit code = %d, want %d", exitErr.Code, want)
	}
}

func TestExecute_RunsHandler(t *testing.T) {
	f := newFixture(t)
	if err := f.execute("new", "project", "demo"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if len(f.calls) != 1 || f.calls[0] != "new:demo" {
		t.Errorf("calls = %v", f.calls)
	}
}

func TestExecute_HandlerFlagsAfterVerb(t *testing.T) {
	f := newFixture(t)
	err := f.execute("new", "project", "--help")
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if !strings.Contains(f.stdout.String(), "usage: first_blood new project") {
		t.Errorf("stdout = %q, want handler help", f.stdout.String())
	}
	if len(f.calls) != 0 {
		t.Errorf("handler ran on --help: %v", f.calls)
	}
}

func TestExecute_NotImplemented(t *testing.T) {
	f := newFixture(t)
	err := f.execute("get", "user")
	wantExitCode(t, err, engine.ExitNotImplemented)
	if !strings.Contains(f.stderr.String(), engine.NotImplementedMessage) {
		t.Errorf("stderr = %q", f.stderr.String())
	}
}

func TestExecute_GrammarMismatch(t *testing.T) {
	f := newFixture(t)
	err := f.execute("bad", "project")
	wantExitCode(t, err, engine.ExitUsage)
	if !strings.Contains(f.stderr.String(), "invalid choice: 'bad'") {
		t.Errorf("stderr = %q", f.stderr.String())
	}
}

func TestExecute_HandlerErrorPassesThrough(t *testing.T) {
	f := newFixture(t)
	err := f.execute("get", "project")
	if !errors.Is(err, errBoom) {
		t.Fatalf("error = %v, want errBoom", err)
	}

	var stderr bytes.Buffer
	if code := exitCode(err, &stderr); code != int(engine.ExitFailure) {
		t.Errorf("exitCode() = %d, want %d", code, engine.ExitFailure)
	}
	if got := stderr.String(); got != "Error: boom\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestExecute_List(t *testing.T) {
	f := newFixture(t)
	if err := f.execute("--list"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	out := f.stdout.String()
	for _, want := range []string{"new project", "get project", "create a new project"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing %q missing %q", out, want)
		}
	}
}

func TestExecute_ListJSON(t *testing.T) {
	f := newFixture(t)
	if err := f.execute("--list", "--format", "json"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(f.stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), f.stdout.String())
	}
	var row struct {
		Key  string `json:"key"`
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &row); err != nil {
		t.Fatal(err)
	}
	if row.Key != "new_project" || row.Kind != "single" {
		t.Errorf("row = %+v", row)
	}
}

func TestExecute_ListUnknownFormat(t *testing.T) {
	f := newFixture(t)
	if err := f.execute("--list", "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestExecute_ConfigFlag(t *testing.T) {
	f := newFixture(t)
	f.opts.ConfigData = nil

	path := filepath.Join(t.TempDir(), "custom.yml")
	settings := strings.Replace(testSettings, "first_blood", "rambo_two", 1)
	if err := os.WriteFile(path, []byte(settings), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := f.execute("--config", path, "new", "project", "--help"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if !strings.Contains(f.stdout.String(), "usage: rambo_two new project") {
		t.Errorf("stdout = %q", f.stdout.String())
	}
}

func TestExecute_ConfigFromEnvironment(t *testing.T) {
	f := newFixture(t)
	f.opts.ConfigData = nil

	path := filepath.Join(t.TempDir(), "env.yml")
	if err := os.WriteFile(path, []byte(testSettings), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RAMBO_CONFIG", path)

	if err := f.execute("new", "project", "demo"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if len(f.calls) != 1 {
		t.Errorf("calls = %v", f.calls)
	}
}

func TestExecute_BadConfig(t *testing.T) {
	f := newFixture(t)
	f.opts.ConfigData = []byte("rambo:\n  app: {}\n")

	err := f.execute("new", "project", "demo")
	if !errors.Is(err, config.ErrConfiguration) {
		t.Fatalf("error = %v, want ErrConfiguration", err)
	}
	if code := exitCode(err, &bytes.Buffer{}); code != int(engine.ExitFailure) {
		t.Errorf("exitCode() = %d, want %d", code, engine.ExitFailure)
	}
}

func TestExecute_BadLogLevel(t *testing.T) {
	f := newFixture(t)
	if err := f.execute("--log-level", "loud", "new", "project", "demo"); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}

func TestExecute_RootHelp(t *testing.T) {
	f := newFixture(t)
	if err := f.execute("--help"); err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	out := f.stdout.String()
	for _, want := range []string{"first_blood", "--config", "--list"} {
		if !strings.Contains(out, want) {
			t.Errorf("help %q missing %q", out, want)
		}
	}
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	if code := exitCode(nil, &stderr); code != 0 {
		t.Errorf("exitCode(nil) = %d, want 0", code)
	}
	if code := exitCode(&engine.ExitError{Code: engine.ExitNotImplemented}, &stderr); code != 1 {
		t.Errorf("exitCode(ExitError) = %d, want 1", code)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want nothing for exit codes", stderr.String())
	}
}

func TestExecute_HandlerCannotClaimNotImplemented(t *testing.T) {
	f := newFixture(t)
	claimed := &engine.ExitError{Code: engine.ExitNotImplemented}
	catalog := handler.NewCatalog()
	catalog.Register("commands", handler.Definition{
		Name: "GetUser",
		Kind: handler.SingleAction,
		Action: func(context.Context, *handler.Args) error {
			return claimed
		},
	})
	f.opts.Source = discovery.CatalogSource{Catalog: catalog}

	err := f.execute("get", "user")
	if !errors.Is(err, claimed) {
		t.Fatalf("error = %v, want the handler's error wrapped", err)
	}
	if code := exitCode(err, &bytes.Buffer{}); code != int(engine.ExitFailure) {
		t.Errorf("exitCode() = %d, want %d", code, engine.ExitFailure)
	}
	if strings.Contains(f.stderr.String(), engine.NotImplementedMessage) {
		t.Errorf("stderr = %q, handler ran so nothing is unimplemented", f.stderr.String())
	}
}

func TestHandlerError_KeepsOtherCodes(t *testing.T) {
	usage := &engine.ExitError{Code: engine.ExitUsage}
	if got := handlerError(usage); got != usage {
		t.Errorf("handlerError() = %v, want the error unchanged", got)
	}
	if got := handlerError(errBoom); got != errBoom {
		t.Errorf("handlerError() = %v, want the error unchanged", got)
	}
}
