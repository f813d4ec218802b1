// Package config provides defaults and validation for crashlink configuration.
package config

import "github.com/cockroachdb/errors"

var (
	// ErrMissingLogDir is returned when no report directory is configured.
	ErrMissingLogDir = errors.New("log_dir is required")

	// ErrNegativeLimit is returned when a line or count limit is negative.
	ErrNegativeLimit = errors.New("limit must not be negative")

	// ErrInvalidPattern is returned when an allow-list pattern does not compile.
	ErrInvalidPattern = errors.New("invalid thread name pattern")

	// ErrInvalidVersionConstraint is returned when the ANR platform
	// precondition is not a valid version constraint.
	ErrInvalidVersionConstraint = errors.New("invalid platform version constraint")

	// ErrInvalidLogLevel is returned for an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrConfigNotFound is returned when a config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)
