package hostfuncs

import "github.com/reglet-dev/reaper-bridge/domain/entities"

// UndoBeginBlock2 opens an undo block on proj (CurrentProject for the active
// one). It reports whether the host was called.
func (c *Caller) UndoBeginBlock2(proc entities.Proc, proj entities.Target) bool {
	fn, ok := bound[UndoBeginBlock2Func](c, OpUndoBeginBlock2, proc)
	if !ok {
		return false
	}
	dispatched := false
	c.invoke(OpUndoBeginBlock2, func() {
		fn(uintptr(proj))
		dispatched = true
	})
	return dispatched
}

// UndoEndBlock2 closes the undo block on proj under desc.
// It reports whether the host was called.
func (c *Caller) UndoEndBlock2(proc entities.Proc, proj entities.Target, desc string, flags int) bool {
	fn, ok := bound[UndoEndBlock2Func](c, OpUndoEndBlock2, proc)
	if !ok {
		return false
	}
	dispatched := false
	c.invoke(OpUndoEndBlock2, func() {
		fn(uintptr(proj), desc, int32(flags))
		dispatched = true
	})
	return dispatched
}
