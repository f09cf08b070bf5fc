package capability

import (
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// Resolution outcomes reported to a ResolutionObserver.
const (
	ResultCached   = "cached"
	ResultResolved = "resolved"
	ResultMissing  = "missing"
)

// ResolutionObserver is notified of every Table lookup.
type ResolutionObserver interface {
	ObserveResolution(name, result string)
}

// Table memoizes resolved entry points by name.
//
// Entries are added once and never change or disappear. A name the host
// could not provide is not remembered, so it can still be resolved after a
// late bootstrap. Concurrent first lookups of one name share a single call
// into the host.
type Table struct {
	resolver *Resolver
	entries  sync.Map // string -> entities.Proc
	group    singleflight.Group
	hooks    atomic.Pointer[tableHooks]
}

// tableHooks are the Table settings that can be replaced after construction.
type tableHooks struct {
	observer ResolutionObserver
	logger   *zap.Logger
}

// TableOption configures a Table.
type TableOption func(*tableHooks)

// WithObserver reports every lookup to obs.
func WithObserver(obs ResolutionObserver) TableOption {
	return func(h *tableHooks) {
		h.observer = obs
	}
}

// WithTableLogger sets the logger. The default discards everything.
func WithTableLogger(l *zap.Logger) TableOption {
	return func(h *tableHooks) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewTable creates an empty table in front of resolver.
func NewTable(resolver *Resolver, opts ...TableOption) *Table {
	t := &Table{resolver: resolver}
	t.hooks.Store(&tableHooks{logger: zap.NewNop()})
	t.Configure(opts...)
	return t
}

// Configure applies opts to a table that may already be in use, such as
// the one returned by Default. Entries resolved so far are kept.
func (t *Table) Configure(opts ...TableOption) {
	next := *t.hooks.Load()
	for _, opt := range opts {
		opt(&next)
	}
	t.hooks.Store(&next)
}

// Resolver returns the resolver the table looks names up with.
func (t *Table) Resolver() *Resolver {
	return t.resolver
}

// SetBootstrap forwards to the underlying Resolver.
func (t *Table) SetBootstrap(proc entities.Proc) bool {
	return t.resolver.SetBootstrap(proc)
}

// Bootstrapped reports whether the bootstrap lookup is available.
func (t *Table) Bootstrapped() bool {
	return t.resolver.Bootstrapped()
}

// Resolve returns the entry point for name, looking it up on first use.
func (t *Table) Resolve(name string) entities.Proc {
	proc, _ := t.Lookup(name)
	return proc
}

// Lookup is Resolve with the reason for a null result.
func (t *Table) Lookup(name string) (entities.Proc, error) {
	if v, ok := t.entries.Load(name); ok {
		t.observe(name, ResultCached)
		return v.(entities.Proc), nil
	}

	v, err, _ := t.group.Do(name, func() (any, error) {
		if v, ok := t.entries.Load(name); ok {
			return v, nil
		}
		proc, err := t.resolver.Lookup(name)
		if err != nil {
			return entities.Proc(0), err
		}
		t.entries.Store(name, proc)
		return proc, nil
	})
	proc := v.(entities.Proc)
	if err != nil {
		t.observe(name, ResultMissing)
		return 0, err
	}
	t.observe(name, ResultResolved)
	return proc, nil
}

// Has reports whether name has already been resolved.
func (t *Table) Has(name string) bool {
	_, ok := t.entries.Load(name)
	return ok
}

// Names returns the sorted names resolved so far.
func (t *Table) Names() []string {
	var names []string
	t.entries.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Len returns the number of resolved names.
func (t *Table) Len() int {
	n := 0
	t.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Preload resolves every name now and returns those the host lacks.
func (t *Table) Preload(names ...string) []string {
	var missing []string
	for _, name := range names {
		if t.Resolve(name).IsNil() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		t.hooks.Load().logger.Warn("host operations unavailable", zap.Strings("names", missing))
	}
	return missing
}

func (t *Table) observe(name, result string) {
	if obs := t.hooks.Load().observer; obs != nil {
		obs.ObserveResolution(name, result)
	}
}

var _ ports.Resolver = (*Table)(nil)
