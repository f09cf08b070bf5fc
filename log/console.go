package log

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// consoleSyncer writes encoded records to the host console.
//
// Printing to the console is itself a host call that may log; a record
// produced while another one is being printed is dropped instead of
// recursing.
type consoleSyncer struct {
	w    ports.ConsoleWriter
	busy atomic.Bool
}

func (c *consoleSyncer) Write(p []byte) (int, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return len(p), nil
	}
	defer c.busy.Store(false)
	c.w.ShowConsoleMsg(string(p))
	return len(p), nil
}

func (c *consoleSyncer) Sync() error {
	return nil
}

// backgroundKey marks records logged from a goroutine the host does not own.
const backgroundKey = "goroutine"

// Background returns l tagged so that its records skip the host console.
// Printing to the console is a host call and the host only accepts those
// on its own thread; loggers used by watchers and other goroutines started
// here must go through Background.
func Background(l *zap.Logger) *zap.Logger {
	return l.With(zap.String(backgroundKey, "background"))
}

func isBackground(fields []zapcore.Field) bool {
	for _, f := range fields {
		if f.Key == backgroundKey {
			return true
		}
	}
	return false
}

// consoleCore drops every record carrying the Background tag.
type consoleCore struct {
	zapcore.Core
}

func (c consoleCore) With(fields []zapcore.Field) zapcore.Core {
	if isBackground(fields) {
		return zapcore.NewNopCore()
	}
	return consoleCore{c.Core.With(fields)}
}

func (c consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c consoleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if isBackground(fields) {
		return nil
	}
	return c.Core.Write(ent, fields)
}

// newConsoleCore forwards records at warn or above, and at or above level,
// to w as one plain line each.
func newConsoleCore(w ports.ConsoleWriter, level zap.AtomicLevel) zapcore.Core {
	encCfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		NameKey:          "logger",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
	}
	enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel && level.Enabled(l)
	})
	return consoleCore{zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), &consoleSyncer{w: w}, enabler)}
}
