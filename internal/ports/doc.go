// Package ports defines the interfaces (ports) that connect the
// application layer to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the application needs from external systems
// without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [DecodeSource]: Delivers raw decode lines from the receiver log
//   - [DatagramSender]: Transmits one finished datagram
//   - [Logger]: Structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with
// concrete file system, UDP and zerolog implementations, which keeps the
// upload loop testable with in-memory fakes.
package ports
