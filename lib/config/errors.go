package config

import "errors"

var (
	// ErrConfiguration reports a settings source that is missing, malformed
	// or incomplete.
	ErrConfiguration = errors.New("configuration error")

	// ErrSettingsSourceNotConfigured is returned by GetAppSettings when no
	// app.config_file was declared. Callers that treat app settings as
	// optional check for it with errors.Is.
	ErrSettingsSourceNotConfigured = errors.New("no app config file is set")

	// ErrUnknownConnection means the connection name is not declared under
	// db_connections.
	ErrUnknownConnection = errors.New("unknown database connection")

	// ErrMissingEnvironmentVariable means the connection is declared but the
	// environment variable it points at is unset.
	ErrMissingEnvironmentVariable = errors.New("missing environment variable")
)
