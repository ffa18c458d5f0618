// Package orchestrator drives a wakegrid run: it walks the resolved
// activation order, sends the wake signal for each node, hands the node
// to pkg/engine for concurrent health verification, and skips
// dependents of nodes that never became healthy.
package orchestrator
