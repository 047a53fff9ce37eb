// Package app provides the application context for the scrub CLI:
// configuration loading, logger setup, and the cobra command tree.
package app

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/scrub/pkg/errors"
)

// App is the scrub CLI application with its configuration and logger.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates an App with the given version information and the
// configuration loaded from env, .env files, and defaults.
func New(version, commit, date, builtBy string) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, &errors.ConfigError{Component: "app", Message: "loading configuration", Err: err}
	}

	logger := NewLogger(config)
	return &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		config:  config,
		logger:  &logger,
	}, nil
}

// Version returns the version string.
func (a *App) Version() string { return a.version }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// ExitOnError prints the error to stderr and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
