// Package migrations embeds the SQL migrations for the Postgres lead
// sink, consumed by cmd/migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
