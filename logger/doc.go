// Package logger provides structured logging for scenariokit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("scenario.registry")
//	log.Warn("scenario overwritten", logger.Fields(logger.FieldScenario, name))
package logger
