package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage is returned when the command line is missing required arguments.
	ErrUsage = errors.New("usage error")
	// ErrTargetNotFound is returned when the target directory does not exist.
	ErrTargetNotFound = errors.New("target directory not found")
	// ErrConfig is the sentinel every ConfigError matches with errors.Is.
	ErrConfig = errors.New("invalid configuration")
)

// ConfigError reports a rule file that is missing, unreadable or malformed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes every ConfigError match ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
