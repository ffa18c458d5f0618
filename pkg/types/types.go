package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// NodeStatus represents the current bring-up state of a node
type NodeStatus string

const (
	NodeStatusWaiting  NodeStatus = "waiting"
	NodeStatusSent     NodeStatus = "sent"
	NodeStatusOk       NodeStatus = "ok"
	NodeStatusTimedOut NodeStatus = "timed_out"
)

// CheckStatus represents the run state of a single health check
type CheckStatus string

const (
	CheckStatusWaiting  CheckStatus = "waiting"
	CheckStatusRunning  CheckStatus = "running"
	CheckStatusOk       CheckStatus = "ok"
	CheckStatusTimedOut CheckStatus = "timed_out"
)

// CheckType selects the probe strategy for a health check
type CheckType string

const (
	CheckTypeHTTP  CheckType = "http"
	CheckTypePort  CheckType = "port"
	CheckTypeShell CheckType = "shell"
)

// Defaults for health check pacing. Timeout is deliberately generous:
// some machines take minutes to boot, and it can be overridden per check.
const (
	DefaultRetry   = 10 * time.Second
	DefaultTimeout = 5 * time.Minute
)

// Node is one machine or service to be woken and verified.
// Structural fields are fixed after configuration load; only Status
// mutates afterwards, under the engine's lock.
type Node struct {
	Name      string  `yaml:"name"`
	MAC       string  `yaml:"mac"`
	Interface string  `yaml:"interface"`
	VLAN      *uint16 `yaml:"vlan,omitempty"`

	// Depends names nodes that must be fully healthy before this one
	// is activated.
	Depends []string `yaml:"depends,omitempty"`

	// Checks are verified concurrently after the wake signal is sent.
	// A node with no checks is considered healthy immediately.
	Checks []*HealthCheck `yaml:"check,omitempty"`

	Status NodeStatus `yaml:"-"`
}

// HealthCheck is one verification strategy attached to a node, with its
// own retry/timeout policy. The variant-specific fields below are only
// meaningful for the matching Type; validation enforces that.
type HealthCheck struct {
	Type CheckType `yaml:"type"`

	// Retry is the pause between failed probe attempts.
	Retry Duration `yaml:"retry,omitempty"`

	// Timeout is the wall-clock budget before the check is abandoned.
	Timeout Duration `yaml:"timeout,omitempty"`

	// http
	URL string `yaml:"url,omitempty"`

	// http: expected response status code. shell: expected exit code.
	ExpectedStatus *int `yaml:"status,omitempty"`

	// http: pattern matched against the response body.
	// shell: pattern matched against stdout.
	Regex string `yaml:"regex,omitempty"`

	// port
	IP   string `yaml:"ip,omitempty"`
	Port uint16 `yaml:"port,omitempty"`

	// shell
	Command string `yaml:"command,omitempty"`

	// Pattern is Regex compiled at validation time.
	Pattern *regexp.Regexp `yaml:"-"`

	Status CheckStatus `yaml:"-"`
}

// ApplyDefaults fills in zero retry/timeout values.
func (c *HealthCheck) ApplyDefaults() {
	if c.Retry == 0 {
		c.Retry = Duration(DefaultRetry)
	}
	if c.Timeout == 0 {
		c.Timeout = Duration(DefaultTimeout)
	}
}

// String renders the check the way it appears in run summaries,
// e.g. "http [http://nas:5000/health]" or "port [10.0.0.7:22]".
func (c *HealthCheck) String() string {
	switch c.Type {
	case CheckTypeHTTP:
		return fmt.Sprintf("http [%s]", c.URL)
	case CheckTypePort:
		return fmt.Sprintf("port [%s:%d]", c.IP, c.Port)
	case CheckTypeShell:
		return fmt.Sprintf("shell [%s]", truncate(c.Command, 30))
	default:
		return string(c.Type)
	}
}

// truncate shortens s to at most max runes, ellipsis included. Cutting
// on runes keeps multibyte commands valid UTF-8 in summaries.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// Duration is a time.Duration that unmarshals from human-readable YAML
// literals: Go forms ("10s", "1h30m") and spelled-out forms
// ("800 ms", "2 minutes", "1 minute 30 seconds").
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond, "nanosecond": time.Nanosecond, "nanoseconds": time.Nanosecond,
	"us": time.Microsecond, "µs": time.Microsecond, "microsecond": time.Microsecond, "microseconds": time.Microsecond,
	"ms": time.Millisecond, "millisecond": time.Millisecond, "milliseconds": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
}

// ParseDuration parses a human-readable duration literal. It accepts
// everything time.ParseDuration does, plus whitespace-separated
// value/unit pairs with spelled-out units.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields)%2 != 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var total time.Duration
	for i := 0; i < len(fields); i += 2 {
		n, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		unit, ok := durationUnits[strings.ToLower(fields[i+1])]
		if !ok {
			return 0, fmt.Errorf("invalid duration %q: unknown unit %q", s, fields[i+1])
		}
		total += time.Duration(n * float64(unit))
	}
	return total, nil
}
