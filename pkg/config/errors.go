package config

import "fmt"

// ParseError reports malformed configuration input: unreadable file,
// invalid YAML, or a node record with missing or unusable identity
// fields. Always fatal; nothing is partially loaded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BadHealthCheckError reports a health check whose configured fields
// cannot determine success.
type BadHealthCheckError struct {
	Reason string
}

func (e *BadHealthCheckError) Error() string {
	return fmt.Sprintf("misconfigured healthcheck: %s", e.Reason)
}
