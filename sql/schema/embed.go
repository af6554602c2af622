// Package schema embeds the goose migrations so the server can run them
// without shipping loose SQL files.
package schema

import "embed"

//go:embed *.sql
var Migrations embed.FS
