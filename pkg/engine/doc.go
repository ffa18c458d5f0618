/*
Package engine runs a node's health checks concurrently and aggregates
their outcomes into the node's status.

All checks of one node run in parallel, each with an independent
retry-until-timeout loop. The engine deliberately has no early exit:
once one check times out the others still run to their own terminal
state before the aggregate is computed. Sequencing across nodes, that
is, never starting a dependent before its dependency's aggregate is
known, is the orchestrator's job, not the engine's.

The node collection is shared through State, a single reader-writer
lock over the whole list. The lock is held only for individual status
reads and writes, never across a probe attempt or a retry sleep.
*/
package engine
