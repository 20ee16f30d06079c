// Package database owns the gorm connection behind the account store.
//
// The driver is chosen by configuration: "sqlite" for development and tests
// (":memory:" or a file DSN) and "postgres" (pgx) for deployments. Connecting
// is retried with backoff at startup; request paths never retry.
//
//	comp := database.NewComponent(cfg, log).
//	    WithAutoMigrate(&account.Account{}).
//	    WithMigrations(account.Migrations, "migrations")
//	registry.Register(comp)
//
// Subpackages:
//
//   - migration: versioned SQL migrations through golang-migrate
//   - testutil:  in-memory sqlite databases for package tests
package database
