// Package migrations embeds the database schema so that cmd/migrate and the
// integration test harness can apply it without a checkout-relative file path.
package migrations

import _ "embed"

//go:embed schema.sql
var Schema string
