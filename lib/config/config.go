/*
PURPOSE:
  Defines the application settings model for rambo applications and the
  logic that parses it from a rambo.yml document.

REQUIREMENTS:
  User-specified:
  - Declare application identity, allowed verbs and nouns, and the
    handler locations searched at startup.
  - Optional database connection references and env-file settings.

  Implementation-discovered:
  - Every optional field needs a defined default instead of a lookup failure.
  - Vocabulary entries cannot contain "_" because it separates verb and noun
    in a dispatch key.

ARCHITECTURE INTEGRATION:
  - Used by: lib/discovery, lib/engine, lib/bootstrap, lib/cli
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Every parse or validation failure wraps ErrConfiguration.
  - Missing file is a configuration error; there are no built-in defaults for
    the required fields.

IMPLEMENTATION RULES:
  - Config is read-only after Parse. Accessors return copies of slices and maps.

USAGE:
  cfg, err := config.Load("rambo.yml")

RELATED FILES:
  - lib/config/settings.go
  - lib/config/errors.go

MAINTENANCE:
  - Update rawConfig and validate() together when adding settings.
*/

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFiles are searched, in order, by Load when no path is given.
var DefaultFiles = []string{"rambo.yml", "rambo.yaml"}

// document is the top-level namespace of a settings source.
type document struct {
	Rambo *rawConfig `yaml:"rambo"`
}

type rawConfig struct {
	App struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		ConfigFile  string `yaml:"config_file"`
	} `yaml:"app"`
	EntrypointPaths []string `yaml:"entrypoint_paths"`
	Terminal        struct {
		Verbs []string `yaml:"verbs"`
		Nouns []string `yaml:"nouns"`
	} `yaml:"terminal"`
	DBConnections map[string]string `yaml:"db_connections"`
	Environment   struct {
		LoadEnvFile bool   `yaml:"load_env_file"`
		EnvFileName string `yaml:"env_file_name"`
	} `yaml:"environment"`
}

// Config is the validated settings of a rambo application.
type Config struct {
	appName         string
	appDescription  string
	appConfigFile   string
	entrypointPaths []string
	verbs           []string
	nouns           []string
	dbConnections   map[string]string
	loadEnvFile     bool
	envFileName     string
	root            string
	source          string
}

// Option adjusts how a settings source is parsed.
type Option func(*Config)

// WithRoot sets the directory relative paths (the app config file) are
// resolved against. Defaults to the working directory at parse time.
func WithRoot(dir string) Option {
	return func(c *Config) { c.root = dir }
}

// Load reads configuration from a file.
// If path is empty, it searches DefaultFiles in the working directory.
func Load(path string, opts ...Option) (*Config, error) {
	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrConfiguration, path, err)
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: reading %s: %v", ErrConfiguration, name, err)
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: no settings file found (looked for %s)",
				ErrConfiguration, strings.Join(DefaultFiles, ", "))
		}
	}

	cfg, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.source = path
	return cfg, nil
}

// Parse builds a Config from a YAML settings document with a top-level
// "rambo" key.
func Parse(data []byte, opts ...Option) (*Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: settings source is empty", ErrConfiguration)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed settings: %v", ErrConfiguration, err)
	}
	if doc.Rambo == nil {
		return nil, fmt.Errorf("%w: missing top-level %q namespace", ErrConfiguration, "rambo")
	}
	raw := doc.Rambo
	if err := raw.validate(); err != nil {
		return nil, err
	}

	cfg := &Config{
		appName:         strings.TrimSpace(raw.App.Name),
		appDescription:  raw.App.Description,
		appConfigFile:   raw.App.ConfigFile,
		entrypointPaths: slices.Clone(raw.EntrypointPaths),
		verbs:           slices.Clone(raw.Terminal.Verbs),
		nouns:           slices.Clone(raw.Terminal.Nouns),
		dbConnections:   make(map[string]string, len(raw.DBConnections)),
		loadEnvFile:     raw.Environment.LoadEnvFile,
		envFileName:     raw.Environment.EnvFileName,
	}
	for name, envVar := range raw.DBConnections {
		cfg.dbConnections[name] = envVar
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: resolving working directory: %v", ErrConfiguration, err)
		}
		cfg.root = wd
	}
	return cfg, nil
}

func (r *rawConfig) validate() error {
	if strings.TrimSpace(r.App.Name) == "" {
		return fmt.Errorf("%w: app.name is required", ErrConfiguration)
	}
	if r.EntrypointPaths == nil {
		return fmt.Errorf("%w: entrypoint_paths is required", ErrConfiguration)
	}
	for i, p := range r.EntrypointPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: entrypoint_paths[%d] is empty", ErrConfiguration, i)
		}
	}
	if err := validateVocabulary("terminal.verbs", r.Terminal.Verbs); err != nil {
		return err
	}
	if err := validateVocabulary("terminal.nouns", r.Terminal.Nouns); err != nil {
		return err
	}
	for name, envVar := range r.DBConnections {
		if envVar == "" {
			return fmt.Errorf("%w: db_connections.%s has no environment variable", ErrConfiguration, name)
		}
	}
	return nil
}

func validateVocabulary(field string, words []string) error {
	if len(words) == 0 {
		return fmt.Errorf("%w: %s must list at least one word", ErrConfiguration, field)
	}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		switch {
		case w == "":
			return fmt.Errorf("%w: %s contains an empty word", ErrConfiguration, field)
		case strings.ContainsAny(w, "_ \t"):
			return fmt.Errorf("%w: %s word %q may not contain '_' or whitespace", ErrConfiguration, field, w)
		case seen[w]:
			return fmt.Errorf("%w: %s word %q is listed twice", ErrConfiguration, field, w)
		}
		seen[w] = true
	}
	return nil
}

// AppName is the application's name as used in usage lines.
func (c *Config) AppName() string { return c.appName }

// AppDescription is the optional one-line description of the application.
func (c *Config) AppDescription() string { return c.appDescription }

// AppConfigFile is the optional path of the application settings file.
func (c *Config) AppConfigFile() string { return c.appConfigFile }

// EntrypointPaths are the handler locations in discovery order.
func (c *Config) EntrypointPaths() []string { return slices.Clone(c.entrypointPaths) }

// Verbs are the allowed first tokens of an invocation.
func (c *Config) Verbs() []string { return slices.Clone(c.verbs) }

// Nouns are the allowed second tokens of an invocation.
func (c *Config) Nouns() []string { return slices.Clone(c.nouns) }

// HasVerb reports whether verb is in the configured vocabulary.
func (c *Config) HasVerb(verb string) bool { return slices.Contains(c.verbs, verb) }

// HasNoun reports whether noun is in the configured vocabulary.
func (c *Config) HasNoun(noun string) bool { return slices.Contains(c.nouns, noun) }

// DBConnections maps connection names to the environment variable holding
// the connection string.
func (c *Config) DBConnections() map[string]string {
	out := make(map[string]string, len(c.dbConnections))
	for k, v := range c.dbConnections {
		out[k] = v
	}
	return out
}

// LoadEnvFile reports whether an env file is loaded before handlers run.
func (c *Config) LoadEnvFile() bool { return c.loadEnvFile }

// EnvFileName is the configured env file name, relative to the working directory.
func (c *Config) EnvFileName() string { return c.envFileName }

// Root is the directory the app config file is resolved against.
func (c *Config) Root() string { return c.root }

// Source is the path the configuration was loaded from, or "" when parsed
// from memory.
func (c *Config) Source() string { return c.source }

// VerbNounMap lists every dispatch key the vocabulary allows.
func (c *Config) VerbNounMap() []string {
	keys := make([]string, 0, len(c.verbs)*len(c.nouns))
	for _, verb := range c.verbs {
		for _, noun := range c.nouns {
			keys = append(keys, verb+"_"+noun)
		}
	}
	return keys
}

// ResolveConnectionString returns the connection string for a named
// database connection, read from the environment variable it is mapped to.
func (c *Config) ResolveConnectionString(name string) (string, error) {
	envVar, ok := c.dbConnections[name]
	if !ok {
		return "", fmt.Errorf("%w: no database with the name %q has been configured", ErrUnknownConnection, name)
	}
	value, ok := os.LookupEnv(envVar)
	if !ok {
		return "", fmt.Errorf("%w: %s (for connection %q) is not set", ErrMissingEnvironmentVariable, envVar, name)
	}
	return value, nil
}

// appConfigPath resolves AppConfigFile against Root.
func (c *Config) appConfigPath() string {
	if filepath.IsAbs(c.appConfigFile) {
		return c.appConfigFile
	}
	return filepath.Join(c.root, c.appConfigFile)
}
