// Package migrations embeds the goose SQL migrations for every supported
// database dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
