/*
PURPOSE:
  Renders a new rambo application skeleton from embedded templates.

REQUIREMENTS:
  User-specified:
  - "rambo new project <name>" creates <name>/ in the working directory.
  - Project names may not contain punctuation from DisallowedChars.
  - --install builds and installs the binary.

  Implementation-discovered:
  - Go module paths cannot contain whitespace, so it is rejected too.
  - Existing files are overwritten; existing directories are reused.

ARCHITECTURE INTEGRATION:
  - Called by: internal/commands (NewProject handler)
  - Calls: text/template, os

ERROR HANDLING:
  - Validation fails with ErrInvalidProjectName before anything is written.
  - I/O errors are wrapped with the path involved.

RELATED FILES:
  - internal/scaffold/templates/
*/

package scaffold

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/daryltucker/rambo/internal/output"
)

// DisallowedChars may not appear in a project name.
const DisallowedChars = "!\"#$%&'()*+,./:;<=>?@[\\]^`{|}~"

// DefaultGoVersion is written to the generated go.mod.
const DefaultGoVersion = "1.24"

// ErrInvalidProjectName is returned for names that are empty or contain
// disallowed characters.
var ErrInvalidProjectName = errors.New("invalid project name")

//go:embed templates/*.tmpl
var templates embed.FS

// file maps an embedded template to its path inside the project.
type file struct {
	template string
	target   func(name string) string
}

var files = []file{
	{"settings.yml.tmpl", func(name string) string { return name + ".yml" }},
	{"main.go.tmpl", func(string) string { return "main.go" }},
	{"go.mod.tmpl", func(string) string { return "go.mod" }},
	{"commands.go.tmpl", func(string) string { return filepath.Join("commands", "commands.go") }},
}

// Project is the data the templates are rendered with.
type Project struct {
	Name      string
	Module    string
	GoVersion string
}

// ValidateProjectName reports whether name can be used as a project name.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidProjectName)
	}
	for _, r := range name {
		if strings.ContainsRune(DisallowedChars, r) || unicode.IsSpace(r) {
			return fmt.Errorf("%w: %q contains %q; the following characters are not allowed in a project name: %s",
				ErrInvalidProjectName, name, r, DisallowedChars)
		}
	}
	return nil
}

// Generate writes the skeleton for name under parent and returns the
// project directory.
func Generate(parent, name string) (string, error) {
	if err := ValidateProjectName(name); err != nil {
		return "", err
	}
	project := Project{Name: name, Module: name, GoVersion: DefaultGoVersion}
	root := filepath.Join(parent, name)

	for _, f := range files {
		content, err := render(f.template, project)
		if err != nil {
			return "", err
		}

		target := filepath.Join(root, f.target(name))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, content, 0644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", target, err)
		}
		output.Logger.Info("Created file", "path", target)
	}
	return root, nil
}

func render(name string, project Project) ([]byte, error) {
	tmpl, err := template.ParseFS(templates, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, project); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Runner runs an external command inside dir.
type Runner func(ctx context.Context, dir, name string, args ...string) error

// ExecRunner runs commands with os/exec, sharing the process stdio.
func ExecRunner(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Install resolves the project's dependencies and installs its binary with
// the go tool.
func Install(ctx context.Context, dir string, run Runner) error {
	if run == nil {
		run = ExecRunner
	}
	steps := [][]string{
		{"go", "mod", "tidy"},
		{"go", "install", "."},
	}
	for _, step := range steps {
		output.Logger.Info("Running", "command", strings.Join(step, " "), "dir", dir)
		if err := run(ctx, dir, step[0], step[1:]...); err != nil {
			return fmt.Errorf("%s: %w", strings.Join(step, " "), err)
		}
	}
	return nil
}
