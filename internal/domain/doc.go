// Package domain contains the core domain entities and logic for
// upload-to-rbn.
//
// This package represents the innermost layer of the application. It has
// no dependencies on infrastructure concerns (networking, file system,
// logging) and contains only pure business logic.
//
// # Entities
//
//   - [Decode]: A single FT8 decode parsed from the receiver's log
//   - [BandFor]: Maps a receive frequency to its canonical base frequency
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
