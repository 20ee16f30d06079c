// Package server provides the HTTP server: a gin engine behind h2c (or TLS)
// with the standard middleware stack, health endpoints and the single error
// writer, RespondWithError.
//
// # Middleware
//
// Gin middleware (server/middleware), outermost first:
//
//   - RequestID: request id generation and propagation
//   - RequestLogger: request logging and HTTP metrics
//   - ErrorHandler: writes errors recorded by later middleware
//   - Recovery: turns panics into unknown errors
//
// Route-level middleware: RateLimit, Auth and RequirePermission.
// CORS and BodySizeLimit wrap the whole handler at the net/http level.
//
// # Endpoints
//
//   - /health: component health aggregation
//   - /liveness, /readiness: probes
//   - /info, /version: build information
package server
