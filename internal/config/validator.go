package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "wizard.debounce_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateServer()...)
	errors = append(errors, c.validateClient()...)
	errors = append(errors, c.validateWizard()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	if c.Server.SearchCacheTTLSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "server.search_cache_ttl_seconds",
			Value:   c.Server.SearchCacheTTLSeconds,
			Message: "must be zero or positive",
		})
	}
	if c.Server.MaxSearchResults < 1 {
		errors = append(errors, ValidationError{
			Field:   "server.max_search_results",
			Value:   c.Server.MaxSearchResults,
			Message: "must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateClient() []ValidationError {
	var errors []ValidationError

	if c.Client.BaseURL != "" {
		if u, err := url.Parse(c.Client.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "client.base_url",
				Value:   c.Client.BaseURL,
				Message: "must be an absolute URL",
			})
		}
	}
	if c.Client.TimeoutSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "client.timeout_seconds",
			Value:   c.Client.TimeoutSeconds,
			Message: "must be at least 1 second",
		})
	}

	return errors
}

func (c *Config) validateWizard() []ValidationError {
	var errors []ValidationError

	if c.Wizard.DebounceMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "wizard.debounce_ms",
			Value:   c.Wizard.DebounceMs,
			Message: "must be zero or positive",
		})
	}
	if c.Wizard.MinQueryLength < 1 {
		errors = append(errors, ValidationError{
			Field:   "wizard.min_query_length",
			Value:   c.Wizard.MinQueryLength,
			Message: "must be at least 1",
		})
	}
	if c.Wizard.DefaultDays < 1 || c.Wizard.DefaultDays > 30 {
		errors = append(errors, ValidationError{
			Field:   "wizard.default_days",
			Value:   c.Wizard.DefaultDays,
			Message: "must be between 1 and 30",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
