package orchestrator

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wakegrid/wakegrid/pkg/engine"
	"github.com/wakegrid/wakegrid/pkg/log"
	"github.com/wakegrid/wakegrid/pkg/types"
	"github.com/wakegrid/wakegrid/pkg/wol"
)

// NodeResult is one node's final outcome in a run.
type NodeResult struct {
	Name   string
	Status types.NodeStatus

	// Skipped is set when the node was never activated because a
	// transitive dependency did not come up healthy.
	Skipped bool

	// Err is set when sending the wake signal itself failed.
	Err error
}

// Orchestrator walks a dependency-ordered node list: wake each node,
// verify it through the engine, and only then move on to nodes that
// depend on it.
type Orchestrator struct {
	state  *engine.State
	waker  wol.Waker
	runID  string
	logger zerolog.Logger
}

// New creates an orchestrator over an already-ordered node list, as
// returned by config.Load.
func New(nodes []*types.Node, waker wol.Waker) *Orchestrator {
	runID := uuid.NewString()
	return &Orchestrator{
		state:  engine.NewState(nodes),
		waker:  waker,
		runID:  runID,
		logger: log.WithComponent("orchestrator").With().Str("run_id", runID).Logger(),
	}
}

// State exposes the shared node state for status display.
func (o *Orchestrator) State() *engine.State {
	return o.state
}

// Run performs the bring-up and returns one result per node, in
// activation order. Nodes are processed strictly sequentially; the
// concurrency lives inside each node's health checks. A node whose
// dependency failed or was skipped is skipped too; independent
// branches still proceed.
func (o *Orchestrator) Run(ctx context.Context) []NodeResult {
	results := make([]NodeResult, 0, o.state.Len())
	healthy := make(map[string]bool, o.state.Len())

	for i := 0; i < o.state.Len(); i++ {
		node := o.state.Node(i)
		logger := o.logger.With().Str("node", node.Name).Logger()

		if blocked := o.blockedOn(node, healthy); blocked != "" {
			logger.Warn().
				Str("dependency", blocked).
				Msg("skipping node, dependency is not healthy")
			results = append(results, NodeResult{
				Name:    node.Name,
				Status:  o.state.NodeStatus(i),
				Skipped: true,
			})
			continue
		}

		logger.Info().Str("mac", node.MAC).Str("interface", node.Interface).Msg("sending wake signal")
		if err := o.waker.Wake(node); err != nil {
			logger.Error().Err(err).Msg("failed to send wake signal")
			results = append(results, NodeResult{
				Name:   node.Name,
				Status: o.state.NodeStatus(i),
				Err:    err,
			})
			continue
		}
		o.state.SetNodeStatus(i, types.NodeStatusSent)

		status := engine.Run(ctx, o.state, i)
		if status == types.NodeStatusOk {
			healthy[node.Name] = true
			logger.Info().Int("checks", len(node.Checks)).Msg("node is healthy")
		} else {
			logger.Error().Msg("node did not become healthy before timeout")
		}
		results = append(results, NodeResult{Name: node.Name, Status: status})
	}

	return results
}

// blockedOn returns the name of the first dependency that did not come
// up healthy, or "" if the node is clear to activate. Dependencies are
// always processed earlier thanks to the topological order.
func (o *Orchestrator) blockedOn(node *types.Node, healthy map[string]bool) string {
	for _, dep := range node.Depends {
		if !healthy[dep] {
			return dep
		}
	}
	return ""
}
