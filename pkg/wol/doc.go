// Package wol sends wake-on-LAN magic packets. The orchestrator talks
// to the Waker interface; UDPWaker is the real implementation,
// broadcasting from the node's configured interface.
package wol
