// Package migrations embeds the PostgreSQL schema migrations so the server
// and the migrate CLI can apply them without a migrations directory on disk.
package migrations

import "embed"

// FS holds every *.sql migration in this directory
//
//go:embed *.sql
var FS embed.FS
