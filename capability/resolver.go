package capability

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/errors"
	"github.com/reglet-dev/reaper-bridge/domain/ports"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
)

// Resolver asks the host's bootstrap lookup for entry points by name.
// It never caches; see Table.
type Resolver struct {
	bootstrap Bootstrap
	binder    ports.Binder
	catalog   *hostfuncs.Catalog
	logger    atomic.Pointer[zap.Logger]

	mu     sync.Mutex
	lookup hostfuncs.GetFuncFunc
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		r.SetLogger(l)
	}
}

// WithCatalog replaces the catalog used to type the bootstrap lookup.
func WithCatalog(c *hostfuncs.Catalog) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.catalog = c
		}
	}
}

// NewResolver creates a Resolver that calls the bootstrap through binder.
func NewResolver(binder ports.Binder, opts ...ResolverOption) *Resolver {
	r := &Resolver{binder: binder}
	r.logger.Store(zap.NewNop())
	for _, opt := range opts {
		opt(r)
	}
	if r.catalog == nil {
		r.catalog = hostfuncs.DefaultCatalog()
	}
	return r
}

// SetLogger replaces the logger of a resolver that may already be in use.
// A nil logger is ignored.
func (r *Resolver) SetLogger(l *zap.Logger) {
	if l != nil {
		r.logger.Store(l)
	}
}

func (r *Resolver) log() *zap.Logger {
	return r.logger.Load()
}

// SetBootstrap stores the host's lookup entry point. Only the first non-nil
// value is kept; later calls are logged and ignored.
func (r *Resolver) SetBootstrap(proc entities.Proc) bool {
	if proc.IsNil() {
		r.log().Error("ignoring nil bootstrap lookup")
		return false
	}
	if !r.bootstrap.Set(proc) {
		r.log().Warn("bootstrap lookup already set, ignoring",
			zap.Stringer("current", r.bootstrap.Get()),
			zap.Stringer("ignored", proc),
		)
		return false
	}
	r.log().Info("bootstrap lookup set", zap.Stringer("proc", proc))
	return true
}

// Bootstrapped reports whether the bootstrap lookup is available.
func (r *Resolver) Bootstrapped() bool {
	return r.bootstrap.IsSet()
}

// Resolve returns the entry point for name, or the null Proc. Nothing is
// called when name is empty or the bootstrap is unset.
func (r *Resolver) Resolve(name string) entities.Proc {
	proc, _ := r.Lookup(name)
	return proc
}

// Lookup is Resolve with the reason for a null result.
func (r *Resolver) Lookup(name string) (proc entities.Proc, err error) {
	if name == "" {
		return 0, &errors.InvalidInputError{Op: "resolve", Field: "name", Reason: "empty"}
	}
	boot := r.bootstrap.Get()
	if boot.IsNil() {
		r.log().Debug("resolve before bootstrap", zap.String("name", name))
		return 0, errors.ErrNotBootstrapped
	}

	fn, err := r.lookupFunc(boot)
	if err != nil {
		r.log().Error("cannot bind bootstrap lookup", zap.Error(err))
		return 0, &errors.ResolveError{Name: name, Err: err}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log().Error("bootstrap lookup panicked", zap.String("name", name), zap.Any("panic", rec))
			proc, err = 0, &errors.ResolveError{Name: name}
		}
	}()

	proc = entities.Proc(fn(name))
	if proc.IsNil() {
		r.log().Warn("host has no entry point", zap.String("name", name))
		return 0, &errors.ResolveError{Name: name}
	}
	r.log().Debug("resolved host operation", zap.String("name", name), zap.Stringer("proc", proc))
	return proc, nil
}

// lookupFunc binds the bootstrap the first time it is needed.
func (r *Resolver) lookupFunc(boot entities.Proc) (hostfuncs.GetFuncFunc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookup != nil {
		return r.lookup, nil
	}
	fn, err := hostfuncs.Bind[hostfuncs.GetFuncFunc](r.binder, r.catalog, hostfuncs.OpGetFunc, boot)
	if err != nil {
		return nil, err
	}
	r.lookup = fn
	return fn, nil
}
