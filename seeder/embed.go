package seeder

import "embed"

// PostgresMigrationsFS carries the schema migrations so binaries can
// run them without access to the source tree.
//
//go:embed db/postgres/migrations/*.sql
var PostgresMigrationsFS embed.FS
