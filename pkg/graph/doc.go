// Package graph resolves the node dependency relation into a safe
// activation order.
//
// Sort is a pure function: no I/O, no concurrency. It rejects
// configurations with cycles or references to undefined nodes before
// any node is touched, so the orchestrator only ever sees a valid,
// fully-ordered node list.
package graph
