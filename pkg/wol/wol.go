package wol

import (
	"fmt"
	"net"

	"github.com/wakegrid/wakegrid/pkg/metrics"
	"github.com/wakegrid/wakegrid/pkg/types"
)

// Waker sends the platform wake signal for a node. The orchestrator
// only depends on this interface, so tests can substitute a fake.
type Waker interface {
	Wake(node *types.Node) error
}

// WakePort is the conventional wake-on-LAN UDP port.
const WakePort = 9

// UDPWaker broadcasts wake-on-LAN magic packets over UDP, sourced from
// the node's configured network interface.
type UDPWaker struct {
	Port int
}

// NewUDPWaker creates a waker using the conventional discard port.
func NewUDPWaker() *UDPWaker {
	return &UDPWaker{Port: WakePort}
}

// MagicPacket builds the standard 102-byte wake-on-LAN payload for a
// MAC address: six 0xFF bytes followed by sixteen repetitions of the
// 48-bit address.
func MagicPacket(mac string) ([]byte, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return nil, fmt.Errorf("invalid mac address %q: %w", mac, err)
	}
	if len(hw) != 6 {
		return nil, fmt.Errorf("mac address %q is not a 48-bit address", mac)
	}

	packet := make([]byte, 0, 102)
	for i := 0; i < 6; i++ {
		packet = append(packet, 0xFF)
	}
	for i := 0; i < 16; i++ {
		packet = append(packet, hw...)
	}
	return packet, nil
}

// Wake broadcasts the magic packet for the node. The node's VLAN tag,
// if any, is not applied here: tagging happens on the configured
// interface itself (e.g. an eth0.100 sub-interface).
func (w *UDPWaker) Wake(node *types.Node) error {
	packet, err := MagicPacket(node.MAC)
	if err != nil {
		return err
	}

	local, err := interfaceAddr(node.Interface)
	if err != nil {
		return err
	}

	conn, err := net.DialUDP("udp4", local, &net.UDPAddr{
		IP:   net.IPv4bcast,
		Port: w.Port,
	})
	if err != nil {
		return fmt.Errorf("node %q: open broadcast socket: %w", node.Name, err)
	}
	defer conn.Close()

	if _, err := conn.Write(packet); err != nil {
		return fmt.Errorf("node %q: send magic packet: %w", node.Name, err)
	}
	metrics.WakePacketsTotal.Inc()
	return nil
}

// interfaceAddr returns a local UDP address on the named interface, so
// the broadcast leaves through the right network segment.
func interfaceAddr(name string) (*net.UDPAddr, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("interface %q: %w", name, err)
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil, fmt.Errorf("interface %q: %w", name, err)
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil {
			return &net.UDPAddr{IP: ipnet.IP}, nil
		}
	}
	return nil, fmt.Errorf("interface %q has no IPv4 address", name)
}
