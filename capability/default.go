package capability

import (
	"sync"

	"github.com/reglet-dev/reaper-bridge/infrastructure/native"
)

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide table, bound to native entry points.
// The host loads an extension once per process, so there is one bootstrap.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable(NewResolver(native.NewBinder()))
	})
	return defaultTable
}
