package udp

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/vu2ptt/upload-to-rbn/internal/domain"
)

// Broadcaster implements ports.DatagramSender over an IPv4 UDP socket
// with SO_BROADCAST set, so the destination may be a subnet or limited
// broadcast address as well as a unicast one.
type Broadcaster struct {
	conn *net.UDPConn
	dst  *net.UDPAddr
}

// NewBroadcaster opens a UDP socket for the given destination.
func NewBroadcaster(addr string, port int) (*Broadcaster, error) {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("udp: not an IPv4 address: %q", addr)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("udp: port out of range: %d", port)
	}

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return nil, fmt.Errorf("udp: open socket: %w", err)
	}

	if err := setBroadcast(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("udp: enable broadcast: %w", err)
	}

	return &Broadcaster{
		conn: conn,
		dst:  &net.UDPAddr{IP: ip.To4(), Port: port},
	}, nil
}

// setBroadcast sets SO_BROADCAST on the socket.
func setBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var serr error
	if err := raw.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	}); err != nil {
		return err
	}
	return serr
}

// Send transmits exactly one datagram. UDP has no partial-write semantics
// under normal conditions, so a byte-count mismatch indicates a serious
// fault and is surfaced as ErrShortWrite.
func (b *Broadcaster) Send(payload []byte) error {
	n, err := b.conn.WriteToUDP(payload, b.dst)
	if err != nil {
		return fmt.Errorf("udp: send: %w", err)
	}
	if n != len(payload) {
		return fmt.Errorf("%w: sent %d of %d bytes", domain.ErrShortWrite, n, len(payload))
	}
	return nil
}

// Close releases the socket.
func (b *Broadcaster) Close() error {
	return b.conn.Close()
}

// Destination returns the configured destination address.
func (b *Broadcaster) Destination() string {
	return b.dst.String()
}
