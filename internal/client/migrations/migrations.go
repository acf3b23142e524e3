// Package migrations embeds the goose SQL migrations for the CLI's local
// SQLite database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
