// Package component defines lifecycle-managed infrastructure pieces
// (the database connection, the HTTP server) and the registry that starts
// them in order, stops them in reverse, and aggregates their health for
// the readiness probe.
package component
