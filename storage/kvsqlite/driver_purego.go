//go:build !cgo_sqlite

// Pure Go SQLite driver using modernc.org/sqlite. Default when CGO is
// disabled or the cgo_sqlite tag is not set.
package kvsqlite

import (
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	driverName    = "sqlite"
	driverPackage = "modernc.org/sqlite"
)
