package hostfuncs

import "github.com/reglet-dev/reaper-bridge/domain/entities"

// CountSelectedTracks returns the number of selected tracks in proj, or 0.
func (c *Caller) CountSelectedTracks(proc entities.Proc, proj entities.Target) int {
	fn, ok := bound[CountSelectedTracksFunc](c, OpCountSelectedTracks, proc)
	if !ok {
		return 0
	}
	var n int32
	c.invoke(OpCountSelectedTracks, func() { n = fn(uintptr(proj)) })
	return int(n)
}

// GetSelectedTrack returns the idx-th selected track of proj, or a nil target.
func (c *Caller) GetSelectedTrack(proc entities.Proc, proj entities.Target, idx int) entities.Target {
	if idx < 0 {
		c.rejected(OpGetSelectedTrack, "negative index")
		return 0
	}
	fn, ok := bound[GetSelectedTrackFunc](c, OpGetSelectedTrack, proc)
	if !ok {
		return 0
	}
	var tr uintptr
	c.invoke(OpGetSelectedTrack, func() { tr = fn(uintptr(proj), int32(idx)) })
	return entities.Target(tr)
}

// GetTrackName fills buf with the track's name.
func (c *Caller) GetTrackName(proc entities.Proc, track entities.Target, buf *TextBuffer) bool {
	if !buf.Valid() {
		c.rejected(OpGetTrackName, "buffer has no capacity")
		return false
	}
	buf.Reset()
	if track.IsNil() {
		c.rejected(OpGetTrackName, "nil track")
		return false
	}
	fn, ok := bound[GetTrackNameFunc](c, OpGetTrackName, proc)
	if !ok {
		return false
	}
	var res bool
	p, size := buf.ptr()
	c.invoke(OpGetTrackName, func() { res = fn(uintptr(track), p, size) })
	return res
}

// GetMediaTrackInfoValue returns the numeric track attribute parm
// (for example "I_SELECTED" or "D_VOL"), or 0.
func (c *Caller) GetMediaTrackInfoValue(proc entities.Proc, track entities.Target, parm string) float64 {
	if track.IsNil() {
		c.rejected(OpGetMediaTrackInfoValue, "nil track")
		return 0
	}
	if parm == "" {
		c.rejected(OpGetMediaTrackInfoValue, "empty attribute name")
		return 0
	}
	fn, ok := bound[GetMediaTrackInfoValueFunc](c, OpGetMediaTrackInfoValue, proc)
	if !ok {
		return 0
	}
	var v float64
	c.invoke(OpGetMediaTrackInfoValue, func() { v = fn(uintptr(track), parm) })
	return v
}
