package ports

import (
	"context"
	"io"
)

// DecodeSource delivers raw decode lines from the receiver's log.
// Implementations read the file sequentially from the start; in follow
// mode they keep delivering lines as the receiver appends them.
type DecodeSource interface {
	// Open prepares the source for reading.
	Open(ctx context.Context) error

	// Next returns the next complete line, without its line terminator.
	// Returns io.EOF when the input is exhausted. In follow mode Next
	// blocks until a line arrives or the context is canceled.
	Next(ctx context.Context) (string, error)

	// Close releases all resources held by the source.
	Close() error
}

// ErrNoMoreLines indicates that the source is exhausted.
var ErrNoMoreLines = io.EOF
