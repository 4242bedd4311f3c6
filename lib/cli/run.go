/*
PURPOSE:
  The body of the root command: settings, logger, discovery, then either
  the command listing or one dispatch.

ARCHITECTURE INTEGRATION:
  - Called by: root command RunE
  - Calls: lib/config.Load/Parse, lib/discovery.Discover, lib/engine.Dispatcher

ERROR HANDLING:
  - Settings and discovery errors are returned as-is (fatal, exit 3).
  - Dispatch exit codes come back as *engine.ExitError.
  - Handler errors are returned unchanged, except that one carrying exit
    code 1 is remapped to engine.ExitFailure.

IMPLEMENTATION RULES:
  - Logic: Env -> Flags override -> Logger -> Config -> Registry -> Dispatch.
*/

package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/daryltucker/rambo/internal/output"
	"github.com/daryltucker/rambo/lib/config"
	"github.com/daryltucker/rambo/lib/discovery"
	"github.com/daryltucker/rambo/lib/engine"
)

func (a *app) run(cmd *cobra.Command, args []string) error {
	dispatcher, err := a.prepare()
	if err != nil {
		return err
	}

	if a.list {
		return a.writeList(dispatcher)
	}

	code, err := dispatcher.Dispatch(cmd.Context(), args)
	if err != nil {
		return handlerError(err)
	}
	if code != engine.ExitOK {
		return &engine.ExitError{Code: code}
	}
	return nil
}

// prepare applies overrides, installs the logger and builds a dispatcher
// over a freshly discovered registry.
func (a *app) prepare() (*engine.Dispatcher, error) {
	e, err := parseEnvironment()
	if err != nil {
		return nil, err
	}
	a.env = e

	// 1. Logger
	level, err := output.ParseLevel(firstNonEmpty(a.logLevel, a.env.LogLevel))
	if err != nil {
		return nil, err
	}
	logger, err := output.NewLogger(a.stderr(), level, firstNonEmpty(a.logFormat, a.env.LogFormat))
	if err != nil {
		return nil, err
	}
	output.SetLogger(logger)

	// 2. Settings
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	output.Logger.Debug("settings loaded", "app", cfg.AppName(), "source", cfg.Source())

	// 3. Registry
	source := a.opts.Source
	if source == nil {
		source = discovery.Chain{
			discovery.CatalogSource{},
			discovery.PluginSource{Root: cfg.Root()},
		}
	}
	registry, err := discovery.Discover(cfg, source, output.Logger)
	if err != nil {
		return nil, err
	}

	return &engine.Dispatcher{
		Config:   cfg,
		Registry: registry,
		Stdout:   a.stdout(),
		Stderr:   a.stderr(),
		Logger:   output.Logger,
	}, nil
}

// loadConfig resolves the settings source: --config, RAMBO_CONFIG,
// Options.ConfigPath, Options.ConfigData, then the default file search.
func (a *app) loadConfig() (*config.Config, error) {
	if path := firstNonEmpty(a.cfgFile, a.env.Config, a.opts.ConfigPath); path != "" {
		return config.Load(path)
	}
	if len(a.opts.ConfigData) > 0 {
		return config.Parse(a.opts.ConfigData)
	}
	return config.Load("")
}

// help prints the dispatcher overview when the settings load, falling back
// to Cobra's usage otherwise.
func (a *app) help(cmd *cobra.Command) {
	dispatcher, err := a.prepare()
	if err != nil {
		cmd.Println(cmd.UsageString())
		cmd.PrintErrf("Error: %v\n", err)
		return
	}
	dispatcher.PrintUsage(a.stdout())
	cmd.Printf("\nGlobal flags:\n%s", cmd.Flags().FlagUsages())
}

// reservedCodeError carries a handler error whose own exit code collides
// with engine.ExitNotImplemented.
type reservedCodeError struct {
	err error
}

func (e *reservedCodeError) Error() string { return e.err.Error() }
func (e *reservedCodeError) Unwrap() error { return e.err }
func (e *reservedCodeError) ExitCode() int { return int(engine.ExitFailure) }

// handlerError keeps exit code 1 for unimplemented commands. A handler
// error asking for code 1 exits with engine.ExitFailure instead.
func handlerError(err error) error {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) && coder.ExitCode() == int(engine.ExitNotImplemented) {
		return &reservedCodeError{err: err}
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
