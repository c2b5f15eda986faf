package lers

import (
	"io"
)

// Config controls compilation limits, prefiltering and tracing.
//
// Example:
//
//	config := lers.DefaultConfig()
//	config.MaxStates = 4096
//	a, err := lers.CompileWithConfig("(a|b)*abb", config)
type Config struct {
	// MaxStates limits the number of automaton states.
	// Default: 1 << 20
	MaxStates int

	// MaxRecursionDepth limits pattern nesting during parsing and lowering.
	// Default: 1000
	MaxRecursionDepth int

	// EnablePrefilter enables literal and first-byte prefiltering.
	// Prefiltering never changes results.
	// Default: true
	EnablePrefilter bool

	// Verbose enables compile tracing.
	Verbose bool

	// LogOutput receives compile tracing. Nil means os.Stderr.
	LogOutput io.Writer
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:         1 << 20,
		MaxRecursionDepth: 1000,
		EnablePrefilter:   true,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxStates: 2 to 1 << 24
//   - MaxRecursionDepth: 10 to 100,000
func (c Config) Validate() error {
	if c.MaxStates < 2 || c.MaxStates > 1<<24 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be between 2 and 16,777,216",
		}
	}
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 100_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 100,000",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "lers: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap returns nfa.ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
