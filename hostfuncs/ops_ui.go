package hostfuncs

import (
	"strings"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

// ShowConsoleMsg prints msg to the host console. It reports whether the host
// was called.
func (c *Caller) ShowConsoleMsg(proc entities.Proc, msg string) bool {
	fn, ok := bound[ShowConsoleMsgFunc](c, OpShowConsoleMsg, proc)
	if !ok {
		return false
	}
	dispatched := false
	c.invoke(OpShowConsoleMsg, func() {
		fn(msg)
		dispatched = true
	})
	return dispatched
}

// ShowMessageBox shows a modal message box and returns the host's button
// code, or 0 when the host was not called.
func (c *Caller) ShowMessageBox(proc entities.Proc, msg, title string, typ int) int {
	fn, ok := bound[ShowMessageBoxFunc](c, OpShowMessageBox, proc)
	if !ok {
		return 0
	}
	var res int32
	c.invoke(OpShowMessageBox, func() { res = fn(msg, title, int32(typ)) })
	return int(res)
}

// GetUserInputs shows a form with one field per caption. values carries the
// comma-separated initial values in and the user's answers out; it is reset
// when the host is not called or the user cancels.
func (c *Caller) GetUserInputs(proc entities.Proc, title string, captions []string, values *TextBuffer) bool {
	if !values.Valid() {
		c.rejected(OpGetUserInputs, "values buffer has no capacity")
		return false
	}
	if len(captions) == 0 {
		c.rejected(OpGetUserInputs, "no captions")
		values.Reset()
		return false
	}
	fn, ok := bound[GetUserInputsFunc](c, OpGetUserInputs, proc)
	if !ok {
		values.Reset()
		return false
	}

	var res bool
	buf, size := values.ptr()
	c.invoke(OpGetUserInputs, func() {
		res = fn(title, int32(len(captions)), strings.Join(captions, ","), buf, size)
	})
	if !res {
		values.Reset()
	}
	return res
}
