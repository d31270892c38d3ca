package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field length limits inherited from the receiver's log format.
const (
	MaxCallLen = 13
	MaxGridLen = 4
)

// timeLayout matches the decode log prefix, e.g. "230101 120000".
const timeLayout = "060102 150405"

// Decode is a single FT8 decode read from the receiver's log.
type Decode struct {
	// Time is the date and time of the decode, to second resolution.
	Time time.Time

	// Sync is the sync quality metric. Parsed for validation but not
	// forwarded to the aggregator.
	Sync float64

	// SNR is the signal-to-noise ratio in dB.
	SNR int32

	// DT is the timing offset of the signal in seconds.
	DT float64

	// FreqHz is the absolute receive frequency in Hz.
	FreqHz int32

	// Call is the decoded callsign. May be empty.
	Call string

	// Grid is the decoded locator. May be empty.
	Grid string
}

// ParseDecode parses one log line of the form
//
//	YYMMDD HHMMSS <sync> <snr> <dt> <freq> [call] [grid]
//
// Timestamp, sync, SNR, timing offset and frequency are mandatory; a
// missing or malformed token fails the whole line. Callsign and grid are
// optional and default to empty. A token exceeding the field's length
// limit is dropped rather than truncated, so the wire never carries a
// mangled callsign.
func ParseDecode(line string) (Decode, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return Decode{}, fmt.Errorf("%w: want at least 6 fields, got %d", ErrBadDecodeLine, len(fields))
	}

	ts, err := time.Parse(timeLayout, fields[0]+" "+fields[1])
	if err != nil {
		return Decode{}, fmt.Errorf("%w: timestamp: %v", ErrBadDecodeLine, err)
	}

	sync, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Decode{}, fmt.Errorf("%w: sync: %v", ErrBadDecodeLine, err)
	}

	snr, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil {
		return Decode{}, fmt.Errorf("%w: snr: %v", ErrBadDecodeLine, err)
	}

	dt, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return Decode{}, fmt.Errorf("%w: dt: %v", ErrBadDecodeLine, err)
	}

	freq, err := strconv.ParseInt(fields[5], 10, 32)
	if err != nil {
		return Decode{}, fmt.Errorf("%w: frequency: %v", ErrBadDecodeLine, err)
	}

	d := Decode{
		Time:   ts,
		Sync:   sync,
		SNR:    int32(snr),
		DT:     dt,
		FreqHz: int32(freq),
	}

	if len(fields) > 6 && len(fields[6]) <= MaxCallLen {
		d.Call = fields[6]
	}
	if len(fields) > 7 && len(fields[7]) <= MaxGridLen {
		d.Grid = fields[7]
	}

	return d, nil
}
