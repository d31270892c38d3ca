package wsjtx

// Status is a WSJT-X Status message (type 1), sent when the monitored
// band changes. RBN Aggregator reads the dial frequency, the mode and
// loosely the DX call; the remaining fields are framing it skips over.
type Status struct {
	// ID is the software identifier announced to the aggregator.
	ID string

	// DialHz is the canonical base frequency of the monitored band.
	DialHz int32

	// DXCall is the callsign from the decode that triggered the change.
	DXCall string

	// Report is the SNR rendered as text.
	Report string

	// DECall, DEGrid and DXGrid are operator placeholders. The
	// aggregator ignores them but the fields must be framed.
	DECall string
	DEGrid string
	DXGrid string
}

// Encode serializes the status message.
func (s Status) Encode() []byte {
	w := newWriter(TypeStatus)
	w.putString(s.ID)
	w.putInt32(0) // high word of the 8-byte dial frequency
	w.putInt32(s.DialHz)
	w.putString(ModeFT8)
	w.putString(s.DXCall)
	w.putString(s.Report)
	w.putString(ModeFT8) // TX mode
	w.putBool(false)     // TX enabled
	w.putBool(false)     // transmitting
	w.putBool(false)     // decoding
	w.putInt32(0)        // RX offset
	w.putInt32(0)        // TX offset
	w.putString(s.DECall)
	w.putString(s.DEGrid)
	w.putString(s.DXGrid)
	w.putBool(false) // TX watchdog
	w.putString("")  // submode
	w.putBool(false) // fast mode
	w.putUint8(0)    // special operation mode
	return w.bytes()
}

// Decode is a WSJT-X Decode message (type 2), one per FT8 decode.
type Decode struct {
	// ID is the software identifier announced to the aggregator.
	ID string

	// SNR is the signal-to-noise ratio in dB.
	SNR int32

	// DT is the timing offset of the signal in seconds.
	DT float64

	// DeltaHz is the audio offset from the dial frequency.
	DeltaHz int32

	// Message is the synthesized message text, e.g. "CQ AB1CDE FN42".
	Message string
}

// Encode serializes the decode message.
func (d Decode) Encode() []byte {
	w := newWriter(TypeDecode)
	w.putString(d.ID)
	w.putBool(true) // new decode
	w.putUint32(0)  // time since midnight, unused by the aggregator
	w.putInt32(d.SNR)
	w.putFloat64(d.DT)
	w.putInt32(d.DeltaHz)
	w.putString(ModeFT8)
	w.putString(d.Message)
	w.putBool(false) // low confidence
	w.putBool(false) // off air
	return w.bytes()
}
