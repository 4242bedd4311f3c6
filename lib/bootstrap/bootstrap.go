/*
PURPOSE:
  Loads the application's env file into the process environment before a
  handler runs.

REQUIREMENTS:
  User-specified:
  - Only when environment.load_env_file is true.
  - A missing file is an error, not a silent skip.

  Implementation-discovered:
  - Variables already set in the environment win over the file.
  - An empty env_file_name means ".env".

ARCHITECTURE INTEGRATION:
  - Called by: lib/engine.Dispatcher after argument parsing
  - Depends on: github.com/joho/godotenv, lib/config

ERROR HANDLING:
  - ErrEnvironmentFileNotFound wraps the missing path.
*/

// Package bootstrap prepares the process environment before a handler
// runs. Its only job today is loading the env file named in the
// application settings.
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/daryltucker/rambo/lib/config"
)

// DefaultEnvFileName is used when load_env_file is set without a name.
const DefaultEnvFileName = ".env"

// ErrEnvironmentFileNotFound means env-file loading was requested but the
// file does not exist.
var ErrEnvironmentFileNotFound = errors.New("environment file not found")

// MaybeLoadEnvironment loads the configured env file from the working
// directory when the configuration asks for it, and does nothing
// otherwise.
func MaybeLoadEnvironment(cfg *config.Config) error {
	if !cfg.LoadEnvFile() {
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	_, err = LoadEnvironment(wd, cfg)
	return err
}

// LoadEnvironment loads the configured env file from dir into the process
// environment and returns its path. Variables already set are kept. It
// returns "" and no error when the configuration does not request loading.
func LoadEnvironment(dir string, cfg *config.Config) (string, error) {
	if !cfg.LoadEnvFile() {
		return "", nil
	}
	name := cfg.EnvFileName()
	if name == "" {
		name = DefaultEnvFileName
	}
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: no env file found at %s", ErrEnvironmentFileNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("checking env file %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrEnvironmentFileNotFound, path)
	}

	if err := godotenv.Load(path); err != nil {
		return "", fmt.Errorf("loading env file %s: %w", path, err)
	}
	slog.Debug("loaded env file", "path", path)
	return path, nil
}
