package capability

import (
	"sync/atomic"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

// Bootstrap holds the host's name lookup entry point. It can be written once;
// the zero value is unset and ready to use.
type Bootstrap struct {
	proc atomic.Uintptr
}

// Set stores proc if no bootstrap has been stored yet. It returns false for
// a nil proc or when a bootstrap is already set; concurrent callers race
// safely and exactly one non-nil value wins.
func (b *Bootstrap) Set(proc entities.Proc) bool {
	if proc.IsNil() {
		return false
	}
	return b.proc.CompareAndSwap(0, uintptr(proc))
}

// Get returns the stored bootstrap, or the null Proc.
func (b *Bootstrap) Get() entities.Proc {
	return entities.Proc(b.proc.Load())
}

// IsSet reports whether a bootstrap has been stored.
func (b *Bootstrap) IsSet() bool {
	return b.proc.Load() != 0
}
