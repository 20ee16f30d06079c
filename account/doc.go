// Package account owns user accounts and the credential flow built on them:
// password authentication that issues a bearer token, registration,
// profile lookup and the optional administrator seed.
//
// Persistence sits behind Repository. GormStore backs it with the database
// package; MemoryStore serves tests and database-less runs.
package account
