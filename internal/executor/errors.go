package executor

import "fmt"

// ConfigurationError reports a problem preparing the engine configuration.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("failed during checkstyle configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ExecutionError reports a problem running the engine or reading its output.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed during checkstyle execution: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
