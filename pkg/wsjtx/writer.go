package wsjtx

import (
	"encoding/binary"
	"math"
)

// Magic and Schema identify a WSJT-X protocol datagram. Schema 2 is the
// earliest version RBN Aggregator accepts.
const (
	Magic  uint32 = 0xadbccbda
	Schema uint32 = 2
)

// Message type discriminators (subset used here).
const (
	TypeStatus uint32 = 1
	TypeDecode uint32 = 2
)

// ModeFT8 is the only mode this tool reports.
const ModeFT8 = "FT8"

// writer accumulates a datagram payload in QDataStream layout.
type writer struct {
	buf []byte
}

// newWriter starts a payload with the fixed header and the given
// message type.
func newWriter(typ uint32) *writer {
	w := &writer{buf: make([]byte, 0, 256)}
	w.putUint32(Magic)
	w.putUint32(Schema)
	w.putUint32(typ)
	return w
}

func (w *writer) putUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *writer) putInt32(v int32) {
	w.putUint32(uint32(v))
}

func (w *writer) putBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *writer) putUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// putString writes a length-prefixed UTF-8 string: 4-byte big-endian byte
// count followed by the raw bytes.
func (w *writer) putString(s string) {
	w.putUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// putFloat64 writes an IEEE-754 double in network byte order. A value of
// exactly zero (negative zero included) encodes as eight zero bytes,
// matching senders that assemble the bit pattern from sign, exponent and
// mantissa and must special-case zero to avoid log2(0).
func (w *writer) putFloat64(v float64) {
	if v == 0 {
		w.buf = append(w.buf, 0, 0, 0, 0, 0, 0, 0, 0)
		return
	}
	w.buf = binary.BigEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// bytes returns the finished payload.
func (w *writer) bytes() []byte {
	return w.buf
}
