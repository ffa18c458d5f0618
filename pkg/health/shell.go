package health

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"time"

	"github.com/wakegrid/wakegrid/pkg/types"
)

// ShellChecker probes by running a command through the shell. Success
// is a clean AND over the configured criteria: if ExpectedStatus is set
// the exit code must match it, and if Pattern is set the captured
// stdout must match it. Validation guarantees at least one of the two
// is configured. A spawn failure is an unhealthy result, not an error.
type ShellChecker struct {
	// Command is run as "sh -c <command>"
	Command string

	// ExpectedStatus is the exact exit code required, if set.
	ExpectedStatus *int

	// Pattern is matched against stdout, if set.
	Pattern *regexp.Regexp

	// Timeout is the command execution timeout (default: 10 seconds)
	Timeout time.Duration
}

// NewShellChecker creates a new shell health checker
func NewShellChecker(command string) *ShellChecker {
	return &ShellChecker{
		Command: command,
		Timeout: 10 * time.Second,
	}
}

// Check runs the command once and evaluates the configured criteria
func (s *ShellChecker) Check(ctx context.Context) Result {
	start := time.Now()

	execCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", s.Command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Could not spawn or was killed before exiting.
			return Result{
				Healthy:   false,
				Message:   fmt.Sprintf("command failed to run: %v", err),
				CheckedAt: start,
				Duration:  time.Since(start),
			}
		}
		exitCode = exitErr.ExitCode()
	}

	if s.ExpectedStatus != nil && exitCode != *s.ExpectedStatus {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("exit code %d (expected %d)", exitCode, *s.ExpectedStatus),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	if s.Pattern != nil && !s.Pattern.Match(stdout.Bytes()) {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("stdout does not match %q", s.Pattern),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	return Result{
		Healthy:   true,
		Message:   fmt.Sprintf("exit code %d", exitCode),
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// Type returns the health check type
func (s *ShellChecker) Type() types.CheckType {
	return types.CheckTypeShell
}

// WithTimeout sets the execution timeout
func (s *ShellChecker) WithTimeout(timeout time.Duration) *ShellChecker {
	s.Timeout = timeout
	return s
}
