package domain

// bandTable lists the monitored FT8 slices as (first kHz bucket, base
// frequency) pairs. Each slice spans four consecutive kHz buckets, so
// a decode anywhere inside the receiver's passband snaps to the base
// frequency RBN Aggregator keys on. The bases must match the aggregator's
// band list exactly.
var bandTable = []struct {
	startKHz int32
	baseHz   int32
}{
	{1840, 1840000},
	{3573, 3573000},
	{5357, 5357000},
	{7056, 7056000},
	{7074, 7074000},
	{10131, 10131000},
	{10136, 10136000},
	{14074, 14074000},
	{18095, 18095000},
	{18100, 18100000},
	{21074, 21074000},
	{24911, 24911000},
	{24915, 24915000},
	{28074, 28074000},
	{50313, 50313000},
	{50323, 50323000},
}

// BandFor snaps a receive frequency in Hz to its canonical base frequency.
// Frequencies outside every monitored slice round down to the nearest kHz
// boundary after a 200 Hz guard offset is subtracted; the guard keeps
// decodes a few hertz above a boundary from landing on the wrong kHz.
func BandFor(freqHz int32) int32 {
	bucket := freqHz / 1000
	for _, b := range bandTable {
		if bucket >= b.startKHz && bucket < b.startKHz+4 {
			return b.baseHz
		}
	}
	return 1000 * ((freqHz - 200) / 1000)
}
