// Package migrations хранит SQL-миграции схемы, они вшиваются в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
