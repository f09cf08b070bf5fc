package hostfuncs

import (
	"sync"

	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// Caller exposes one typed wrapper per host operation.
//
// Every wrapper follows the same steps: validate its arguments, bind the
// entry point to its catalog signature (once per name and address), invoke
// it through the middleware chain and return the raw native result. When the
// entry point is nil or an argument is invalid the wrapper returns its
// documented default and the host is not called at all.
//
// Caller is safe for concurrent use.
type Caller struct {
	binder  ports.Binder
	catalog *Catalog
	logger  *zap.Logger
	invoke  Invocation
	bound   sync.Map // bindKey -> bound function value
}

type bindKey struct {
	name string
	proc entities.Proc
}

// callerBuilder accumulates configuration during Caller construction.
type callerBuilder struct {
	catalog     *Catalog
	logger      *zap.Logger
	middlewares []Middleware
}

// CallerOption is a functional option for configuring a Caller.
type CallerOption func(*callerBuilder)

// WithCatalog replaces the default signature catalog.
func WithCatalog(c *Catalog) CallerOption {
	return func(b *callerBuilder) {
		if c != nil {
			b.catalog = c
		}
	}
}

// WithLogger sets the logger used for validation and bind failures.
func WithLogger(l *zap.Logger) CallerOption {
	return func(b *callerBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMiddleware adds middleware to every host crossing.
// Middleware is applied in the order provided (first wraps outermost).
func WithMiddleware(mw ...Middleware) CallerOption {
	return func(b *callerBuilder) {
		b.middlewares = append(b.middlewares, mw...)
	}
}

// NewCaller creates a Caller that turns entry points into callables with
// binder. Panic recovery always wraps the configured middleware.
func NewCaller(binder ports.Binder, opts ...CallerOption) *Caller {
	b := &callerBuilder{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.catalog == nil {
		b.catalog = DefaultCatalog()
	}

	mws := append([]Middleware{PanicRecoveryMiddleware(b.logger)}, b.middlewares...)

	return &Caller{
		binder:  binder,
		catalog: b.catalog,
		logger:  b.logger,
		invoke:  chain(directInvocation, mws),
	}
}

// Catalog returns the signature catalog the Caller binds against.
func (c *Caller) Catalog() *Catalog {
	return c.catalog
}

// bound returns the callable for name at proc, binding it on first use.
// ok is false for a nil proc or when binding fails; nothing is cached then.
func bound[F any](c *Caller, name string, proc entities.Proc) (fn F, ok bool) {
	if proc.IsNil() {
		c.logger.Debug("host operation not resolved", zap.String("op", name))
		return fn, false
	}

	key := bindKey{name: name, proc: proc}
	if v, hit := c.bound.Load(key); hit {
		fn, ok = v.(F)
		return fn, ok
	}

	fn, err := Bind[F](c.binder, c.catalog, name, proc)
	if err != nil {
		c.logger.Error("cannot bind host operation",
			zap.String("op", name),
			zap.Stringer("proc", proc),
			zap.Error(err),
		)
		return fn, false
	}

	v, _ := c.bound.LoadOrStore(key, fn)
	fn, ok = v.(F)
	return fn, ok
}

// rejected logs an argument that stopped a wrapper before the host call.
func (c *Caller) rejected(op, reason string) {
	c.logger.Warn("host operation skipped", zap.String("op", op), zap.String("reason", reason))
}
