/*
PURPOSE:
  Defines the root Cobra command every rambo application runs under.
  Handles global flags and hands the verb/noun invocation to the engine.

REQUIREMENTS:
  User-specified:
  - "<app> [global flags] <verb> <noun> [args...]".
  - Support global flags like --config.

  Implementation-discovered:
  - Flags after the verb belong to the handler, so flag parsing stops at
    the first positional (SetInterspersed(false)).
  - Binaries may embed their settings (Options.ConfigData).

ARCHITECTURE INTEGRATION:
  - Called by: cmd/rambo/main.go and generated applications
  - Calls: lib/config, lib/discovery, lib/engine

ERROR HANDLING:
  - Returns *engine.ExitError for handled non-zero outcomes; any other error
    is printed by main and exits with engine.ExitFailure.

IMPLEMENTATION RULES:
  - No subcommands: verbs must never collide with Cobra command names.
  - No package-level state; every Execute builds a fresh command.

USAGE:
  os.Exit(cli.Main(cli.Options{ConfigData: settings}))

RELATED FILES:
  - lib/cli/run.go
  - lib/cli/env.go
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/daryltucker/rambo/internal/output"
	"github.com/daryltucker/rambo/lib/discovery"
	"github.com/daryltucker/rambo/lib/engine"
)

// Options configures an application's front end.
type Options struct {
	// Program is the command name shown before the settings are loaded.
	// The loaded app name takes over afterwards.
	Program string

	// ConfigPath is the settings file used when neither --config nor
	// RAMBO_CONFIG is given.
	ConfigPath string

	// ConfigData is an embedded settings document, used when no path is
	// given anywhere.
	ConfigData []byte

	// Source overrides where handler locations are loaded from. Defaults to
	// the handler.DefaultCatalog followed by Go plugin directories.
	Source discovery.Source

	Stdout io.Writer
	Stderr io.Writer
}

// app holds one run's options and flag values.
type app struct {
	opts Options
	env  environment

	cfgFile   string
	list      bool
	format    string
	logLevel  string
	logFormat string
}

// NewRootCommand builds the root command for an application.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Program == "" {
		opts.Program = "rambo"
	}
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:   opts.Program + " <verb> <noun> [args...]",
		Short: "Run a verb/noun command",
		Long: `Dispatches "<verb> <noun>" to the handler registered for that pair.
The allowed verbs and nouns, and where handlers are looked up, come from the
application's rambo.yml. Flags after the verb belong to the handler.`,
		Example: `  # Show the commands this application implements
  ` + opts.Program + ` --list

  # Run a command
  ` + opts.Program + ` new project demo

  # Per-command help
  ` + opts.Program + ` new project --help`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}
	cmd.SetOut(a.stdout())
	cmd.SetErr(a.stderr())

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "settings file (default is ./rambo.yml; env RAMBO_CONFIG)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (env RAMBO_LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: auto, text, json (env RAMBO_LOG_FORMAT)")
	cmd.Flags().BoolVar(&a.list, "list", false, "list the implemented commands and exit")
	cmd.Flags().StringVar(&a.format, "format", output.FormatText, "listing format: text, json, csv")
	cmd.Flags().SetInterspersed(false)

	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		a.help(cmd)
	})
	return cmd
}

// Execute runs the root command over os.Args with a context cancelled on
// interrupt.
func Execute(opts Options) error {
	return ExecuteArgs(context.Background(), opts, os.Args[1:])
}

// ExecuteArgs runs the root command over args.
func ExecuteArgs(ctx context.Context, opts Options, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// Main runs the application and returns the process exit code. Errors that
// are not exit codes are printed to stderr.
func Main(opts Options) int {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return exitCode(Execute(opts), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return int(engine.ExitOK)
	}
	// Dispatch outcomes have already printed their own output.
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return int(engine.ExitFailure)
}

func (a *app) stdout() io.Writer {
	if a.opts.Stdout != nil {
		return a.opts.Stdout
	}
	return os.Stdout
}

func (a *app) stderr() io.Writer {
	if a.opts.Stderr != nil {
		return a.opts.Stderr
	}
	return os.Stderr
}
