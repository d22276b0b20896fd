// Package logger provides structured logging based on Zap.
//
// # Context Awareness
//
// Every HTTP request is tagged with a RayID by the rayid middleware. The
// WithRayID helper extracts it from a Fiber context and attaches it to the
// log entry so all logs for one request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
