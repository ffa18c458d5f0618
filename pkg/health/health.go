package health

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/wakegrid/wakegrid/pkg/types"
)

// Result represents the outcome of a single probe attempt
type Result struct {
	Healthy   bool
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// Checker is the interface that all health checkers must implement.
// Check performs exactly one probe attempt; retry and timeout policy
// belong to the caller. A Check never returns an error: transport and
// spawn failures are ordinary unhealthy results.
type Checker interface {
	// Check performs the health check and returns the result
	Check(ctx context.Context) Result

	// Type returns the type of health check
	Type() types.CheckType
}

// For returns the checker implementing the given check's strategy.
// The check must have passed config validation; an unknown type
// returns nil.
func For(c *types.HealthCheck) Checker {
	switch c.Type {
	case types.CheckTypeHTTP:
		checker := NewHTTPChecker(c.URL)
		checker.ExpectedStatus = c.ExpectedStatus
		checker.Pattern = c.Pattern
		return checker
	case types.CheckTypePort:
		return NewTCPChecker(net.JoinHostPort(c.IP, strconv.Itoa(int(c.Port))))
	case types.CheckTypeShell:
		checker := NewShellChecker(c.Command)
		checker.ExpectedStatus = c.ExpectedStatus
		checker.Pattern = c.Pattern
		return checker
	default:
		return nil
	}
}
