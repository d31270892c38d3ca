package domain

import "errors"

// Domain errors represent error conditions in the upload-to-rbn domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrBadDecodeLine is returned when a log line cannot be parsed as a decode.
	ErrBadDecodeLine = errors.New("rbn: malformed decode line")

	// ErrShortWrite is returned when a datagram was only partially transmitted.
	ErrShortWrite = errors.New("rbn: short datagram write")
)
