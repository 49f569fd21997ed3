package migrations

import "embed"

// FS holds the mongo index migrations applied by cmd/migration.
//
//go:embed mongo/*.json
var FS embed.FS
