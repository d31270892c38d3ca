package udp

import "github.com/vu2ptt/upload-to-rbn/internal/ports"

// Discard implements ports.DatagramSender for dry runs: datagrams are
// counted and logged but never transmitted.
type Discard struct {
	logger ports.Logger

	// Datagrams and Bytes record what would have been sent.
	Datagrams int
	Bytes     int
}

// NewDiscard creates a dry-run sender.
func NewDiscard(logger ports.Logger) *Discard {
	return &Discard{logger: logger}
}

// Send counts the datagram without transmitting it.
func (d *Discard) Send(payload []byte) error {
	d.Datagrams++
	d.Bytes += len(payload)
	d.logger.Debug("dry run: datagram suppressed", ports.Int("size", len(payload)))
	return nil
}

// Close is a no-op.
func (d *Discard) Close() error {
	return nil
}
