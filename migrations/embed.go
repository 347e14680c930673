// Package migrations embeds the versioned schema for each supported database.
package migrations

import "embed"

// FS holds sqlite/ and postgres/ migration sets named NNN_name.sql
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
