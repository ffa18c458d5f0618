/*
Package types defines the core data structures used throughout wakegrid.

A Node describes one machine or service to wake: its MAC address and
network interface for the wake-on-LAN signal, the names of nodes it
depends on, and the health checks that must pass before dependents are
activated. A HealthCheck pairs one probe strategy (http, port or shell)
with a retry interval and a wall-clock timeout.

Structural fields are immutable after configuration load. The Status
fields on Node and HealthCheck are the only mutable state in the system;
they are written by pkg/engine under its lock and are informational:
the authoritative outcome of a node is the engine's return value.
*/
package types
