// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment, in increasing order of precedence.
//
// Environment variables map onto nested keys by splitting on underscores, so
// AUTH_JWT_SECRET populates auth.jwt.secret and SERVER_READ_TIMEOUT populates
// server.read_timeout.
package config
