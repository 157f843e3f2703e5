// Package migrations holds the goose SQL migrations embedded into the
// binary so the schema can be applied at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
