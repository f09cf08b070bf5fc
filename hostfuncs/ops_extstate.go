package hostfuncs

import "github.com/reglet-dev/reaper-bridge/domain/entities"

func (c *Caller) validKey(op, section, key string) bool {
	switch {
	case section == "":
		c.rejected(op, "empty section")
		return false
	case key == "":
		c.rejected(op, "empty key")
		return false
	}
	return true
}

// GetExtState returns the value stored under section/key, or "".
func (c *Caller) GetExtState(proc entities.Proc, section, key string) string {
	if !c.validKey(OpGetExtState, section, key) {
		return ""
	}
	fn, ok := bound[GetExtStateFunc](c, OpGetExtState, proc)
	if !ok {
		return ""
	}
	var res string
	c.invoke(OpGetExtState, func() { res = fn(section, key) })
	return res
}

// SetExtState stores value under section/key, optionally persisting it
// across host restarts. It reports whether the host was called.
func (c *Caller) SetExtState(proc entities.Proc, section, key, value string, persist bool) bool {
	if !c.validKey(OpSetExtState, section, key) {
		return false
	}
	fn, ok := bound[SetExtStateFunc](c, OpSetExtState, proc)
	if !ok {
		return false
	}
	dispatched := false
	c.invoke(OpSetExtState, func() {
		fn(section, key, value, persist)
		dispatched = true
	})
	return dispatched
}

// HasExtState reports whether section/key holds a value.
func (c *Caller) HasExtState(proc entities.Proc, section, key string) bool {
	if !c.validKey(OpHasExtState, section, key) {
		return false
	}
	fn, ok := bound[HasExtStateFunc](c, OpHasExtState, proc)
	if !ok {
		return false
	}
	var res bool
	c.invoke(OpHasExtState, func() { res = fn(section, key) })
	return res
}

// DeleteExtState removes section/key. It reports whether the host was called.
func (c *Caller) DeleteExtState(proc entities.Proc, section, key string, persist bool) bool {
	if !c.validKey(OpDeleteExtState, section, key) {
		return false
	}
	fn, ok := bound[DeleteExtStateFunc](c, OpDeleteExtState, proc)
	if !ok {
		return false
	}
	dispatched := false
	c.invoke(OpDeleteExtState, func() {
		fn(section, key, persist)
		dispatched = true
	})
	return dispatched
}
