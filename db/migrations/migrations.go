// Package migrations holds the ledger schema: campaigns, milestones, the
// transfer and balance tables and the append-only event log.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects. Migrate brings the
// database up (or down) to exactly this version.
const Version uint = 1
