package entities

import "fmt"

// Proc is the address of a native host entry point, as returned by the
// host's bootstrap lookup. The zero value is the null handle.
type Proc uintptr

// IsNil reports whether p is the null handle.
func (p Proc) IsNil() bool {
	return p == 0
}

// String formats the handle as a hex address.
func (p Proc) String() string {
	return fmt.Sprintf("0x%x", uintptr(p))
}

// Target is an opaque host-owned reference to a domain object such as a
// track or a project. It is never dereferenced on this side of the boundary.
type Target uintptr

// CurrentProject is the target the host interprets as "the active project".
const CurrentProject Target = 0

// IsNil reports whether t is the null handle.
func (t Target) IsNil() bool {
	return t == 0
}

// String formats the handle as a hex address.
func (t Target) String() string {
	return fmt.Sprintf("0x%x", uintptr(t))
}

// PluginInfo mirrors the record the host passes to the plugin entry point:
//
//	struct reaper_plugin_info_t {
//	    int caller_version;
//	    HWND hwnd_main;
//	    int (*Register)(const char *name, void *infostruct);
//	    void *(*GetFunc)(const char *name);
//	};
//
// Field order and widths must match the C layout exactly.
type PluginInfo struct {
	CallerVersion int32
	HwndMain      uintptr
	Register      Proc
	GetFunc       Proc
}
