package ports

// DatagramSender transmits one finished datagram to the aggregator.
// UDP broadcast is fire-and-forget: there is no acknowledgement and no
// retry. A send that transmits fewer bytes than the payload holds is an
// error; the caller treats it as fatal for the run.
type DatagramSender interface {
	// Send transmits exactly one datagram.
	Send(payload []byte) error

	// Close releases the underlying socket.
	Close() error
}
