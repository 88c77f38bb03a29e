// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for console (development) and json
// (production) output, and integrates with the Fiber request pipeline.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID assigned by the rayid middleware from
// a Fiber context and attaches it to the log entry, so every line written while
// serving a file can be correlated with its request.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Warn("File not found", zap.String("path", c.Path()))
package logger
