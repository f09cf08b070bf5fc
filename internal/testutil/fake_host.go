// Package testutil provides an in-process stand-in for the native host so
// that wrappers, resolvers and batch engines can be tested without it.
package testutil

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

// BootstrapName is the name the fake bootstrap entry point is counted under.
const BootstrapName = "GetFunc"

const procBase = 0x7f0000001000

// hosts gives every FakeHost its own address range, so addresses from two
// hosts never collide.
var hosts atomic.Uintptr

// FakeHost maps fake entry point addresses to Go functions.
//
// It implements ports.Binder: binding an address produces a function that
// counts the call and forwards to the registered Go function. The types must
// match exactly, which mirrors the catalog check on the real boundary.
type FakeHost struct {
	mu      sync.Mutex
	next    uintptr
	procs   map[string]entities.Proc
	names   map[entities.Proc]string
	funcs   map[entities.Proc]any
	calls   map[string]int
	lookups map[string]int
	binds   map[string]int
}

// NewFakeHost creates an empty fake host.
func NewFakeHost() *FakeHost {
	h := &FakeHost{
		next:    procBase + (hosts.Add(1)-1)<<20,
		procs:   make(map[string]entities.Proc),
		names:   make(map[entities.Proc]string),
		funcs:   make(map[entities.Proc]any),
		calls:   make(map[string]int),
		lookups: make(map[string]int),
		binds:   make(map[string]int),
	}
	h.Register(BootstrapName, func(name string) uintptr {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.lookups[name]++
		return uintptr(h.procs[name])
	})
	return h
}

// Register publishes fn under name and returns its fake address.
// Registering a name again replaces the function but keeps the address.
func (h *FakeHost) Register(name string, fn any) entities.Proc {
	if reflect.TypeOf(fn).Kind() != reflect.Func {
		panic(fmt.Sprintf("testutil: %s: not a function", name))
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	proc, ok := h.procs[name]
	if !ok {
		proc = entities.Proc(h.next)
		h.next += 0x10
		h.procs[name] = proc
		h.names[proc] = name
	}
	h.funcs[proc] = fn
	return proc
}

// Unregister hides name from the bootstrap lookup.
func (h *FakeHost) Unregister(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.procs, name)
}

// Bootstrap returns the address of the fake GetFunc.
func (h *FakeHost) Bootstrap() entities.Proc {
	return h.Proc(BootstrapName)
}

// Proc returns the address registered for name, or 0.
func (h *FakeHost) Proc(name string) entities.Proc {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.procs[name]
}

// Bind implements ports.Binder.
func (h *FakeHost) Bind(fptr any, proc entities.Proc) error {
	ptr := reflect.ValueOf(fptr)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Elem().Kind() != reflect.Func {
		return fmt.Errorf("bind target must be a pointer to a func, got %T", fptr)
	}

	h.mu.Lock()
	fn, ok := h.funcs[proc]
	name := h.names[proc]
	if ok {
		h.binds[name]++
	}
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("no function at %s", proc)
	}
	target := ptr.Elem().Type()
	impl := reflect.ValueOf(fn)
	if impl.Type() != target {
		return fmt.Errorf("%s is %s, cannot bind as %s", name, impl.Type(), target)
	}

	ptr.Elem().Set(reflect.MakeFunc(target, func(args []reflect.Value) []reflect.Value {
		h.mu.Lock()
		h.calls[name]++
		h.mu.Unlock()
		return impl.Call(args)
	}))
	return nil
}

// Calls returns how many times the entry point for name was invoked.
func (h *FakeHost) Calls(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[name]
}

// TotalCalls returns the number of host operation calls, not counting
// bootstrap lookups.
func (h *FakeHost) TotalCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	total := 0
	for name, n := range h.calls {
		if name != BootstrapName {
			total += n
		}
	}
	return total
}

// Lookups returns how many times the bootstrap was asked for name.
func (h *FakeHost) Lookups(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lookups[name]
}

// Binds returns how many times an address for name was bound.
func (h *FakeHost) Binds(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.binds[name]
}

// CalledOps returns the sorted names of every operation called at least once.
func (h *FakeHost) CalledOps() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var names []string
	for name, n := range h.calls {
		if n > 0 && name != BootstrapName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
