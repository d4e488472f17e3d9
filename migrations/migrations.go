// Package migrations embeds the schema files for the SQL storage backends.
package migrations

import "embed"

// FS holds one sub-directory of NNN_name.sql files per backend.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
