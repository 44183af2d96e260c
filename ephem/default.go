package ephem

import (
	"bytes"
	_ "embed"
	"sync"
)

// The bundled element table covers the major planets with mean elements valid
// for roughly 1800-2050.
//
//go:embed elements.json
var bundledElements []byte

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the process-wide ephemeris built from the bundled element
// table. The table is parsed once and shared; callers must treat it as
// read-only, which the Table API enforces.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Load(bytes.NewReader(bundledElements))
	})
	return defaultTable, defaultErr
}
