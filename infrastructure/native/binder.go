// Package native binds host entry points to Go function types using the
// platform C calling convention.
package native

import (
	stdErrors "errors"
	"fmt"
	"reflect"

	"github.com/ebitengine/purego"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// ErrNilProc is returned when asked to bind the null entry point.
var ErrNilProc = stdErrors.New("native: cannot bind a nil entry point")

// Binder implements ports.Binder with purego.RegisterFunc.
//
// Bind does not check that the Go signature matches the native one; that is
// the catalog's job. It only guards against the conversions purego itself
// rejects, which it reports by panicking.
type Binder struct{}

// NewBinder returns the production binder.
func NewBinder() *Binder {
	return &Binder{}
}

// Bind implements ports.Binder.
func (b *Binder) Bind(fptr any, proc entities.Proc) (err error) {
	if proc.IsNil() {
		return ErrNilProc
	}
	v := reflect.ValueOf(fptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Func {
		return fmt.Errorf("native: bind target must be a non-nil pointer to a func, got %T", fptr)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("native: cannot bind %s as %s: %v", proc, v.Elem().Type(), r)
		}
	}()
	purego.RegisterFunc(fptr, uintptr(proc))
	return nil
}

var _ ports.Binder = (*Binder)(nil)
