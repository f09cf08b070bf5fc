// Package bridge is the process-wide entry point for code running inside the
// host: it records the bootstrap lookup once and resolves host operations by
// name through the shared capability table.
//
// Extensions that need more than resolution (typed wrappers, batches,
// persisted state) use host.Load.
package bridge

import (
	"fmt"

	"github.com/reglet-dev/reaper-bridge/application/config"
	"github.com/reglet-dev/reaper-bridge/capability"
	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

// Version is the bridge release.
const Version = "0.3.0"

// SetBootstrap records the host's bootstrap lookup. Only the first non-null
// call takes effect; it reports whether this call did.
func SetBootstrap(proc entities.Proc) bool {
	return capability.Default().SetBootstrap(proc)
}

// Bootstrapped reports whether the bootstrap lookup has been recorded.
func Bootstrapped() bool {
	return capability.Default().Bootstrapped()
}

// Resolve returns the entry point for the named host operation, or the null
// Proc when the bootstrap is missing or the host does not know name.
func Resolve(name string) entities.Proc {
	return capability.Default().Resolve(name)
}

// ValidateConfig loads and validates the configuration file at path.
// A missing file is valid: the defaults apply.
func ValidateConfig(path string) error {
	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}
