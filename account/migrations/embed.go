// Package migrations embeds the versioned SQL schema for the accounts table.
package migrations

import "embed"

// FS holds the golang-migrate files.
//
//go:embed *.sql
var FS embed.FS

// Path is the migrations directory within FS.
const Path = "."
