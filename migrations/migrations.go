// Package migrations embeds the SQL schema so binaries can apply it without
// shipping the directory alongside.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
