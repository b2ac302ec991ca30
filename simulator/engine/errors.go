package engine

import (
	"fmt"
)

// ConfigurationError is returned when a run names a queue or allocation policy
// that does not exist. The run is not attempted.
type ConfigurationError struct {
	Kind string // "queue policy" or "allocation policy"
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Kind, e.Err)
}

func (e *ConfigurationError) Cause() error {
	return e.Err
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type causer interface {
	Cause() error
}

// IsConfigurationError reports whether err, or any error it wraps, is a *ConfigurationError.
func IsConfigurationError(err error) bool {
	for err != nil {
		if _, ok := err.(*ConfigurationError); ok {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

func newConfigurationError(kind, name string, err error) error {
	return &ConfigurationError{Kind: kind, Name: name, Err: err}
}
