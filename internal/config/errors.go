package config

import (
	"fmt"
	"strings"
)

// ValidationError describes a single invalid or missing configuration variable.
type ValidationError struct {
	// Variable is the environment variable name.
	Variable string
	// Message explains what is wrong and how to fix it.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Variable, e.Message)
}

// ConfigurationError aggregates all validation failures found during startup.
// It is fatal: the caller must not attempt any fetch with an invalid config.
type ConfigurationError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		msgs = append(msgs, ve.Error())
	}
	return fmt.Sprintf("configuration validation failed: %s", strings.Join(msgs, "; "))
}
