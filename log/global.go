package log

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var global atomic.Pointer[zap.Logger]

// L returns the process-wide logger. It is a no-op logger until SetLogger
// is called.
func L() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the process-wide logger. A nil logger resets it.
func SetLogger(l *zap.Logger) {
	global.Store(l)
}
