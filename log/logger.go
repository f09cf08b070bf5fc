// Package log builds the extension's zap logger.
//
// Records go to a log file and, from warn level up, to the host's console
// window when one is attached. The level can be changed at runtime through
// the returned zap.AtomicLevel.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// Settings mirrors the log section of the configuration file.
type Settings struct {
	Enabled bool
	Level   string
	Path    string
	Console bool
}

// Option configures New.
type Option func(*builder)

type builder struct {
	console ports.ConsoleWriter
	writer  zapcore.WriteSyncer
}

// WithConsole forwards warnings and errors to w when Settings.Console is set.
func WithConsole(w ports.ConsoleWriter) Option {
	return func(b *builder) {
		b.console = w
	}
}

// WithWriter replaces the log file with w.
func WithWriter(w zapcore.WriteSyncer) Option {
	return func(b *builder) {
		b.writer = w
	}
}

// ParseLevel accepts error, warn, info and debug, case-insensitively.
// "trace" is accepted as an alias of debug.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return zapcore.ErrorLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "debug", "trace":
		return zapcore.DebugLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// New builds a logger from s. When logging is disabled it returns a no-op
// logger. The returned close function flushes and closes the log file.
func New(s Settings, opts ...Option) (*zap.Logger, zap.AtomicLevel, func() error, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	noClose := func() error { return nil }
	if !s.Enabled {
		return zap.NewNop(), level, noClose, nil
	}

	lvl, err := ParseLevel(s.Level)
	if err != nil {
		return nil, level, noClose, err
	}
	level.SetLevel(lvl)

	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	closeFn := noClose
	sink := b.writer
	if sink == nil {
		f, err := openLogFile(s.Path)
		if err != nil {
			return nil, level, noClose, err
		}
		sink = zapcore.Lock(f)
		closeFn = f.Close
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level),
	}
	if s.Console && b.console != nil {
		cores = append(cores, newConsoleCore(b.console, level))
	}

	logger := zap.New(zapcore.NewTee(cores...)).Named("reaper-bridge")
	closeAll := func() error {
		_ = logger.Sync()
		return closeFn()
	}
	return logger, level, closeAll, nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
