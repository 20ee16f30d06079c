// Package logger provides structured logging built on zerolog.
//
// A process-wide logger is configured once with Init and reached through the
// package-level helpers or WithComponent. Field values whose keys name
// credential material (password, token, secret, salt) are redacted before
// they reach the output.
//
//	logging:
//	  level: "info"
//	  format: "json"
//
//	log := logger.WithComponent("auth")
//	log.Info("login succeeded", logger.Fields("email", email))
package logger
