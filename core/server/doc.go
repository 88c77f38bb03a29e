// Package server runs the static chart server.
//
// A Server moves through three states:
//
//	Unstarted --Start--> Listening --Serve returns / Shutdown--> Stopped
//
// New validates the Config, resolves the root directory and assembles the
// Fiber application: RayID, request logging, CORS and panic recovery
// middleware, followed by the registered loader features. Start picks the port
// (fixed, or by ascending scan through core/ports) and binds the socket so bind
// failures surface before anything is printed. Serve blocks until its context
// is cancelled and then closes the socket.
//
// # Errors
//
//   - *BindError: the socket could not be bound (port in use, no permission).
//   - ErrNoFreePort: the port scan was exhausted.
//   - ErrInvalidRoot (*RootError): the served directory is missing or unreadable.
//   - ErrServerClosed: Start or Serve on a stopped server.
//
// # Configuration
//
// The Config struct is embedded in core/config and loaded from SERVER_*
// environment variables; see Config for defaults.
package server
