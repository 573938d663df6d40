package migrations

import "embed"

// FS migraciones goose embebidas en el binario.
//
//go:embed *.sql
var FS embed.FS
