// Package migrations embeds the SQLite schema of the client-local state.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
