package config

import (
	"fmt"
	"net"
	"regexp"

	"github.com/wakegrid/wakegrid/pkg/types"
)

// Validate checks every node and every health check eagerly, before
// any ordering or activation. It is all-or-nothing: the first problem
// aborts the load with no partial result.
//
// Validate also normalizes run state: it applies retry/timeout defaults,
// compiles regex patterns, and resets all statuses to Waiting.
func Validate(nodes []*types.Node) error {
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.Name == "" {
			return &ParseError{Err: fmt.Errorf("node with mac %q has no name", n.MAC)}
		}
		if seen[n.Name] {
			return &ParseError{Err: fmt.Errorf("duplicate node name %q", n.Name)}
		}
		seen[n.Name] = true

		if _, err := net.ParseMAC(n.MAC); err != nil {
			return &ParseError{Err: fmt.Errorf("node %q: invalid mac address %q", n.Name, n.MAC)}
		}
		if n.Interface == "" {
			return &ParseError{Err: fmt.Errorf("node %q: interface is required", n.Name)}
		}

		n.Status = types.NodeStatusWaiting
		for _, c := range n.Checks {
			if err := ValidateCheck(c); err != nil {
				return err
			}
			c.ApplyDefaults()
			c.Status = types.CheckStatusWaiting
		}
	}
	return nil
}

// ValidateCheck enforces that a single health check can determine
// success: http and shell checks need at least one of an expected
// status/exit code and a regex, and port checks need a syntactically
// valid IP literal. It compiles Regex into Pattern as a side effect.
func ValidateCheck(c *types.HealthCheck) error {
	switch c.Type {
	case types.CheckTypeHTTP:
		if c.URL == "" {
			return &BadHealthCheckError{Reason: "HTTP health check requires a URL"}
		}
		if c.ExpectedStatus == nil && c.Regex == "" {
			return &BadHealthCheckError{Reason: "HTTP health check requires an HTTP status code to match and/or a regex to match in the response"}
		}
	case types.CheckTypePort:
		if net.ParseIP(c.IP) == nil {
			return &BadHealthCheckError{Reason: "port check requires a valid IP address"}
		}
	case types.CheckTypeShell:
		if c.Command == "" {
			return &BadHealthCheckError{Reason: "shell health check requires a command"}
		}
		if c.ExpectedStatus == nil && c.Regex == "" {
			return &BadHealthCheckError{Reason: "shell health check requires an exit code to match and/or a regex to match in the standard output"}
		}
	default:
		return &BadHealthCheckError{Reason: fmt.Sprintf("unknown check type %q", c.Type)}
	}

	if c.Regex != "" {
		pattern, err := regexp.Compile(c.Regex)
		if err != nil {
			return &BadHealthCheckError{Reason: fmt.Sprintf("invalid regex %q: %v", c.Regex, err)}
		}
		c.Pattern = pattern
	}
	return nil
}
