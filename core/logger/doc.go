// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different
// environments (development vs production) for a command-line tool.
//
// # Run Correlation
//
// Every export run is tagged with a run id. The WithRunID helper
// attaches that id to the logger so all lines produced by one run can
// be correlated, including retry and progress noise from the worker
// pool.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log = logger.WithRunID(log, runID)
//	log.Info("export started")
package logger
