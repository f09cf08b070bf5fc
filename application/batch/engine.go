// Package batch groups many parameter reads, writes and format requests into
// one logical request against the host.
//
// Each request resolves the host operations it needs once, up front. A
// missing operation aborts the request before anything is read or written.
// After that, items are processed best-effort: a failure on one parameter is
// recorded for that item and never stops the rest.
package batch

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/errors"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
)

// Batch kinds, used in log fields and metric labels.
const (
	KindRead     = "read"
	KindApply    = "apply"
	KindFormat   = "format"
	KindFeatures = "features"
)

// Resolver provides entry points together with the reason a lookup failed.
// capability.Table implements it.
type Resolver interface {
	Lookup(name string) (entities.Proc, error)
}

// Observer receives batch outcomes, typically for metrics.
type Observer interface {
	ObserveBatch(kind string, items, failures int)
	ObserveTruncation(kind string)
}

// Engine runs batches against one Caller.
type Engine struct {
	caller        *hostfuncs.Caller
	resolver      Resolver
	logger        *zap.Logger
	observer      Observer
	maxParameters int
	textCapacity  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver reports batch outcomes to obs.
func WithObserver(obs Observer) Option {
	return func(e *Engine) {
		e.observer = obs
	}
}

// WithMaxParameters caps how many parameters a single read returns per
// target, on top of the caller's capacity. Zero means no cap.
func WithMaxParameters(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxParameters = n
		}
	}
}

// WithTextCapacity sets the size of the buffers handed to the host for names
// and formatted values. Values <= 0 keep the default.
func WithTextCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.textCapacity = n
		}
	}
}

// NewEngine creates an Engine that resolves through resolver and calls the
// host through caller.
func NewEngine(caller *hostfuncs.Caller, resolver Resolver, opts ...Option) *Engine {
	e := &Engine{
		caller:       caller,
		resolver:     resolver,
		logger:       zap.NewNop(),
		textCapacity: entities.MaxTextLen,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// begin starts a batch: it assigns a correlation id and a scoped logger.
func (e *Engine) begin(kind string) (string, *zap.Logger) {
	id := uuid.NewString()
	return id, e.logger.With(zap.String("batch_id", id), zap.String("batch", kind))
}

// resolve looks up every name, stopping at the first failure. A failed lookup
// is returned as a *errors.ResolveError naming the operation.
func (e *Engine) resolve(log *zap.Logger, names ...string) ([]entities.Proc, error) {
	if e.resolver == nil {
		return nil, errors.ErrNotBootstrapped
	}
	procs := make([]entities.Proc, len(names))
	for i, name := range names {
		proc, err := e.resolver.Lookup(name)
		if err == nil && proc.IsNil() {
			err = &errors.ResolveError{Name: name}
		}
		if err != nil {
			log.Error("required host operation unavailable, aborting batch",
				zap.String("op", name),
				zap.Error(err),
			)
			var resErr *errors.ResolveError
			if !stdErrors.As(err, &resErr) {
				err = &errors.ResolveError{Name: name, Err: err}
			}
			return nil, err
		}
		procs[i] = proc
	}
	return procs, nil
}

// optional looks up name for a step the batch can do without. A failure is
// logged and yields the null Proc.
func (e *Engine) optional(log *zap.Logger, name string) entities.Proc {
	if e.resolver == nil {
		log.Warn("host operation unavailable, continuing without it", zap.String("op", name))
		return 0
	}
	proc, err := e.resolver.Lookup(name)
	if err != nil {
		log.Warn("host operation unavailable, continuing without it",
			zap.String("op", name),
			zap.Error(err),
		)
		return 0
	}
	return proc
}

func (e *Engine) textBuffer() *hostfuncs.TextBuffer {
	return hostfuncs.NewTextBuffer(e.textCapacity)
}

func (e *Engine) observe(kind string, items, failures int) {
	if e.observer != nil {
		e.observer.ObserveBatch(kind, items, failures)
	}
}

func (e *Engine) truncated(kind string) {
	if e.observer != nil {
		e.observer.ObserveTruncation(kind)
	}
}

func invalid(op, field, reason string) error {
	return &errors.InvalidInputError{Op: op, Field: field, Reason: reason}
}
