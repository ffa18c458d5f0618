// Package metrics defines wakegrid's Prometheus instruments: probe
// attempts and latencies, completed checks, node statuses and wake
// packets sent. Instruments are registered at init; Handler exposes
// the registry for the optional --metrics-addr listener.
package metrics
