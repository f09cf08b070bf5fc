package hostfuncs

import "github.com/reglet-dev/reaper-bridge/domain/entities"

// validFX checks the arguments shared by every effect operation.
func (c *Caller) validFX(op string, track entities.Target, fx int) bool {
	switch {
	case track.IsNil():
		c.rejected(op, "nil track")
		return false
	case fx < 0:
		c.rejected(op, "negative effect index")
		return false
	}
	return true
}

func (c *Caller) validParam(op string, track entities.Target, fx, param int) bool {
	if !c.validFX(op, track, fx) {
		return false
	}
	if param < 0 {
		c.rejected(op, "negative parameter index")
		return false
	}
	return true
}

// TrackFXGetCount returns the number of effects on track, or 0.
func (c *Caller) TrackFXGetCount(proc entities.Proc, track entities.Target) int {
	if track.IsNil() {
		c.rejected(OpTrackFXGetCount, "nil track")
		return 0
	}
	fn, ok := bound[TrackFXGetCountFunc](c, OpTrackFXGetCount, proc)
	if !ok {
		return 0
	}
	var n int32
	c.invoke(OpTrackFXGetCount, func() { n = fn(uintptr(track)) })
	return int(n)
}

// TrackFXGetFXName fills buf with the name of effect fx.
func (c *Caller) TrackFXGetFXName(proc entities.Proc, track entities.Target, fx int, buf *TextBuffer) bool {
	if !buf.Valid() {
		c.rejected(OpTrackFXGetFXName, "buffer has no capacity")
		return false
	}
	buf.Reset()
	if !c.validFX(OpTrackFXGetFXName, track, fx) {
		return false
	}
	fn, ok := bound[TrackFXGetFXNameFunc](c, OpTrackFXGetFXName, proc)
	if !ok {
		return false
	}
	var res bool
	p, size := buf.ptr()
	c.invoke(OpTrackFXGetFXName, func() { res = fn(uintptr(track), int32(fx), p, size) })
	return res
}

// TrackFXGetNumParams returns the parameter count of effect fx, or 0.
func (c *Caller) TrackFXGetNumParams(proc entities.Proc, track entities.Target, fx int) int {
	if !c.validFX(OpTrackFXGetNumParams, track, fx) {
		return 0
	}
	fn, ok := bound[TrackFXGetNumParamsFunc](c, OpTrackFXGetNumParams, proc)
	if !ok {
		return 0
	}
	var n int32
	c.invoke(OpTrackFXGetNumParams, func() { n = fn(uintptr(track), int32(fx)) })
	return int(n)
}

// TrackFXGetParamName fills buf with the name of parameter param.
func (c *Caller) TrackFXGetParamName(proc entities.Proc, track entities.Target, fx, param int, buf *TextBuffer) bool {
	if !buf.Valid() {
		c.rejected(OpTrackFXGetParamName, "buffer has no capacity")
		return false
	}
	buf.Reset()
	if !c.validParam(OpTrackFXGetParamName, track, fx, param) {
		return false
	}
	fn, ok := bound[TrackFXGetParamNameFunc](c, OpTrackFXGetParamName, proc)
	if !ok {
		return false
	}
	var res bool
	p, size := buf.ptr()
	c.invoke(OpTrackFXGetParamName, func() { res = fn(uintptr(track), int32(fx), int32(param), p, size) })
	return res
}

// TrackFXGetParam returns the normalized value of a parameter with its range.
// All three are 0 when the host was not called.
func (c *Caller) TrackFXGetParam(proc entities.Proc, track entities.Target, fx, param int) (value, minVal, maxVal float64) {
	if !c.validParam(OpTrackFXGetParam, track, fx, param) {
		return 0, 0, 0
	}
	fn, ok := bound[TrackFXGetParamFunc](c, OpTrackFXGetParam, proc)
	if !ok {
		return 0, 0, 0
	}
	var lo, hi, v float64
	c.invoke(OpTrackFXGetParam, func() { v = fn(uintptr(track), int32(fx), int32(param), &lo, &hi) })
	return v, lo, hi
}

// TrackFXGetFormattedParamValue fills buf with the parameter's display text.
func (c *Caller) TrackFXGetFormattedParamValue(proc entities.Proc, track entities.Target, fx, param int, buf *TextBuffer) bool {
	if !buf.Valid() {
		c.rejected(OpTrackFXGetFormattedParamValue, "buffer has no capacity")
		return false
	}
	buf.Reset()
	if !c.validParam(OpTrackFXGetFormattedParamValue, track, fx, param) {
		return false
	}
	fn, ok := bound[TrackFXGetFormattedParamValueFunc](c, OpTrackFXGetFormattedParamValue, proc)
	if !ok {
		return false
	}
	var res bool
	p, size := buf.ptr()
	c.invoke(OpTrackFXGetFormattedParamValue, func() { res = fn(uintptr(track), int32(fx), int32(param), p, size) })
	return res
}

// TrackFXSetParam sets a parameter's normalized value.
func (c *Caller) TrackFXSetParam(proc entities.Proc, track entities.Target, fx, param int, value float64) bool {
	if !c.validParam(OpTrackFXSetParam, track, fx, param) {
		return false
	}
	fn, ok := bound[TrackFXSetParamFunc](c, OpTrackFXSetParam, proc)
	if !ok {
		return false
	}
	var res bool
	c.invoke(OpTrackFXSetParam, func() { res = fn(uintptr(track), int32(fx), int32(param), value) })
	return res
}

// TrackFXFormatParamValue fills buf with the display text value would have,
// without changing the parameter.
func (c *Caller) TrackFXFormatParamValue(proc entities.Proc, track entities.Target, fx, param int, value float64, buf *TextBuffer) bool {
	if !buf.Valid() {
		c.rejected(OpTrackFXFormatParamValue, "buffer has no capacity")
		return false
	}
	buf.Reset()
	if !c.validParam(OpTrackFXFormatParamValue, track, fx, param) {
		return false
	}
	fn, ok := bound[TrackFXFormatParamValueFunc](c, OpTrackFXFormatParamValue, proc)
	if !ok {
		return false
	}
	var res bool
	p, size := buf.ptr()
	c.invoke(OpTrackFXFormatParamValue, func() { res = fn(uintptr(track), int32(fx), int32(param), value, p, size) })
	return res
}
