package hostfuncs

import (
	"fmt"
	"reflect"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/errors"
	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// Bind casts proc to the function type F published for name.
//
// This is the only place an entry point becomes callable. The catalog must
// list name with exactly type F; otherwise nothing is bound and a
// *errors.SignatureError is returned.
func Bind[F any](binder ports.Binder, catalog *Catalog, name string, proc entities.Proc) (F, error) {
	var fn F
	if proc.IsNil() {
		return fn, &errors.ResolveError{Name: name}
	}
	if err := catalog.Check(name, reflect.TypeFor[F]()); err != nil {
		return fn, err
	}
	if err := binder.Bind(&fn, proc); err != nil {
		return fn, &errors.BindError{Name: name, Err: err}
	}
	if reflect.ValueOf(&fn).Elem().IsNil() {
		return fn, &errors.BindError{Name: name, Err: fmt.Errorf("binder left %s unset", proc)}
	}
	return fn, nil
}
