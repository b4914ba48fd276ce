package migrations

import "embed"

// FS contains embedded SQLite migrations for dataset storage.
//
//go:embed *.sql
var FS embed.FS
