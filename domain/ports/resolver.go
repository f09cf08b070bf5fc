package ports

import "github.com/reglet-dev/reaper-bridge/domain/entities"

// Resolver looks up a named host operation.
type Resolver interface {
	// Resolve returns the entry point for name, or the null Proc if the
	// host does not provide it or the bootstrap lookup is unavailable.
	Resolve(name string) entities.Proc
}
