package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wakegrid/wakegrid/pkg/health"
	"github.com/wakegrid/wakegrid/pkg/log"
	"github.com/wakegrid/wakegrid/pkg/metrics"
	"github.com/wakegrid/wakegrid/pkg/types"
)

// State is the shared, lock-protected node collection mutated by the
// concurrent check tasks. Structural fields of the nodes are immutable
// after config load; only Status fields are written here, and every
// write happens under the lock in a critical section that never spans
// a probe or a sleep.
//
// Shared statuses are observational (for display and metrics); the
// authoritative outcome of a node is the return value of Run.
type State struct {
	mu    sync.RWMutex
	nodes []*types.Node
}

// NewState wraps an ordered node list for concurrent status access and
// seeds the node-status gauge, so nodes that are never woken still show
// up under their initial status.
func NewState(nodes []*types.Node) *State {
	for _, n := range nodes {
		if n.Status == "" {
			n.Status = types.NodeStatusWaiting
		}
		metrics.NodesTotal.WithLabelValues(string(n.Status)).Inc()
	}
	return &State{nodes: nodes}
}

// Len returns the number of nodes.
func (s *State) Len() int {
	return len(s.nodes)
}

// Node returns the node at index. The returned pointer's structural
// fields are safe to read without the lock; its Status is not.
func (s *State) Node(index int) *types.Node {
	return s.nodes[index]
}

// NodeStatus reads a node's status under the lock.
func (s *State) NodeStatus(index int) types.NodeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[index].Status
}

// SetNodeStatus writes a node's status under the lock.
func (s *State) SetNodeStatus(index int, status types.NodeStatus) {
	s.mu.Lock()
	prev := s.nodes[index].Status
	s.nodes[index].Status = status
	s.mu.Unlock()

	// NewState seeded the gauge for every node, so the previous status
	// is always accounted for.
	metrics.NodesTotal.WithLabelValues(string(prev)).Dec()
	metrics.NodesTotal.WithLabelValues(string(status)).Inc()
}

// CheckStatus reads one check's status under the lock.
func (s *State) CheckStatus(node, check int) types.CheckStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[node].Checks[check].Status
}

func (s *State) setCheckStatus(node, check int, status types.CheckStatus) {
	s.mu.Lock()
	s.nodes[node].Checks[check].Status = status
	s.mu.Unlock()
}

// Run verifies the node at index: every health check it owns runs as
// its own goroutine, retrying failed probes at the check's retry
// interval until the probe succeeds or the check's own timeout
// expires. Run waits for all checks to reach a terminal state (one
// check timing out never cancels its siblings), then aggregates:
// TimedOut if any check timed out, Ok otherwise. A node with no checks
// is Ok immediately.
func Run(ctx context.Context, state *State, index int) types.NodeStatus {
	// Snapshot the check list under the read lock; the checks
	// themselves are structurally immutable after config load.
	state.mu.RLock()
	node := state.nodes[index]
	checks := node.Checks
	state.mu.RUnlock()

	logger := log.WithNode(node.Name)

	statuses := make(chan types.CheckStatus, len(checks))
	var wg sync.WaitGroup
	for i, check := range checks {
		state.setCheckStatus(index, i, types.CheckStatusRunning)

		wg.Add(1)
		go func(i int, check *types.HealthCheck) {
			defer wg.Done()
			statuses <- runCheck(ctx, state, index, i, check, logger)
		}(i, check)
	}
	wg.Wait()
	close(statuses)

	timedOut := false
	for status := range statuses {
		if status == types.CheckStatusTimedOut {
			timedOut = true
		}
	}

	result := types.NodeStatusOk
	if timedOut {
		result = types.NodeStatusTimedOut
	}
	state.SetNodeStatus(index, result)
	return result
}

// runCheck is one check's retry loop. The loop terminates only when a
// probe succeeds or the check's wall-clock timeout elapses; individual
// probe failures are expected "not yet healthy" outcomes, not errors.
// Context cancellation abandons the wait and counts as a timeout.
func runCheck(ctx context.Context, state *State, node, index int, check *types.HealthCheck, logger zerolog.Logger) types.CheckStatus {
	checker := health.For(check)
	nodeName := state.Node(node).Name
	checkType := string(check.Type)

	start := time.Now()
	for {
		if time.Since(start) >= check.Timeout.Std() {
			logger.Warn().
				Stringer("check", check).
				Dur("timeout", check.Timeout.Std()).
				Msg("health check timed out")
			state.setCheckStatus(node, index, types.CheckStatusTimedOut)
			metrics.ChecksTotal.WithLabelValues(nodeName, string(types.CheckStatusTimedOut)).Inc()
			return types.CheckStatusTimedOut
		}

		result := checker.Check(ctx)
		metrics.ProbeDuration.WithLabelValues(nodeName, checkType).Observe(result.Duration.Seconds())
		if result.Healthy {
			metrics.ProbeAttemptsTotal.WithLabelValues(nodeName, checkType, "ok").Inc()
			logger.Info().
				Stringer("check", check).
				Msg("health check passed")
			state.setCheckStatus(node, index, types.CheckStatusOk)
			metrics.ChecksTotal.WithLabelValues(nodeName, string(types.CheckStatusOk)).Inc()
			return types.CheckStatusOk
		}
		metrics.ProbeAttemptsTotal.WithLabelValues(nodeName, checkType, "fail").Inc()
		logger.Debug().
			Stringer("check", check).
			Str("reason", result.Message).
			Msg("probe failed, will retry")

		select {
		case <-time.After(check.Retry.Std()):
		case <-ctx.Done():
			state.setCheckStatus(node, index, types.CheckStatusTimedOut)
			metrics.ChecksTotal.WithLabelValues(nodeName, string(types.CheckStatusTimedOut)).Inc()
			return types.CheckStatusTimedOut
		}
	}
}
