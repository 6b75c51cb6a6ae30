// Package migrations ships the schema as embedded SQL files. The gorm
// adapter applies them at startup in lexical order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
