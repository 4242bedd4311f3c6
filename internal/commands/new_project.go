package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/daryltucker/rambo/internal/scaffold"
	"github.com/daryltucker/rambo/lib/handler"
)

// NewProject scaffolds a new rambo application in a directory named after
// the project.
type NewProject struct {
	// Dir is the parent directory. Defaults to the working directory.
	Dir string

	// Runner executes the install steps. Defaults to scaffold.ExecRunner.
	Runner scaffold.Runner

	Out io.Writer
}

// Definition returns the "new project" handler.
func (p *NewProject) Definition() handler.Definition {
	return handler.Definition{
		Name:        handler.NameOf(p),
		Description: "create a new rambo application",
		Help: `Writes <project_name>/ with a settings file, a main package embedding it
and a commands package whose handlers register themselves at init.`,
		Kind: handler.SingleAction,
		Schema: func(s *handler.Schema) {
			s.Positional("project_name", "the name of your cli application")
			s.Flags().BoolP("install", "i", false, `run "go mod tidy" and "go install ." in the new project`)
		},
		Action: p.run,
	}
}

func (p *NewProject) run(ctx context.Context, args *handler.Args) error {
	name := args.Arg("project_name")
	if err := scaffold.ValidateProjectName(name); err != nil {
		return err
	}

	parent := p.Dir
	if parent == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		parent = wd
	}

	root, err := scaffold.Generate(parent, name)
	if err != nil {
		return err
	}

	install := args.Bool("install")
	if install {
		if err := scaffold.Install(ctx, root, p.Runner); err != nil {
			return err
		}
		fmt.Fprintf(p.out(), "rambo project setup complete. try running %s on your terminal!\n", name)
		return nil
	}
	fmt.Fprintln(p.out(), "rambo project setup complete!")
	return nil
}

func (p *NewProject) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}
