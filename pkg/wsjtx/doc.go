// Package wsjtx builds the subset of WSJT-X network protocol datagrams
// that RBN Aggregator consumes.
//
// The WSJT-X UDP message protocol serializes fields with Qt's QDataStream
// rules: everything is big-endian, strings are a 4-byte byte count
// followed by raw UTF-8 (no terminator, no padding), booleans are a
// single byte and doubles are 8-byte IEEE-754. Every datagram starts with
// a fixed header:
//
//	[Magic(4) = AD BC CB DA][Schema(4) = 2][Type(4)]
//
// Only two message types are produced here: [Status] (type 1) announces
// the monitored dial frequency, [Decode] (type 2) carries a single FT8
// decode. RBN Aggregator ignores most Status fields, but they must all be
// present and correctly framed for the datagram to parse; the builders
// therefore emit the full field lists with fixed placeholder values where
// the aggregator does not care.
package wsjtx
