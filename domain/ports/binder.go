package ports

import "github.com/reglet-dev/reaper-bridge/domain/entities"

// Binder turns a native entry point into a callable Go function.
//
// fptr must be a non-nil pointer to a variable of func type. On success the
// variable holds a function that calls proc with the C calling convention
// matching the Go signature. The caller is responsible for choosing the
// exact signature the host publishes for proc; a mismatch is undefined
// behavior on the native side.
type Binder interface {
	Bind(fptr any, proc entities.Proc) error
}

// BinderFunc adapts an ordinary function to the Binder interface.
type BinderFunc func(fptr any, proc entities.Proc) error

// Bind calls f(fptr, proc).
func (f BinderFunc) Bind(fptr any, proc entities.Proc) error {
	return f(fptr, proc)
}
