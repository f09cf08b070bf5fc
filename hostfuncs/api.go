package hostfuncs

import (
	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/ports"
)

// API resolves each host operation by name and calls it through a Caller.
// Its methods mirror the Caller's without the entry point argument and
// return the same defaults when the operation cannot be resolved.
type API struct {
	resolver ports.Resolver
	caller   *Caller
}

// NewAPI creates an API that resolves through resolver, normally a
// capability table so that each name is looked up once.
func NewAPI(resolver ports.Resolver, caller *Caller) *API {
	return &API{resolver: resolver, caller: caller}
}

// Caller returns the underlying Caller.
func (a *API) Caller() *Caller {
	return a.caller
}

// Resolver returns the resolver used for entry point lookups.
func (a *API) Resolver() ports.Resolver {
	return a.resolver
}

func (a *API) proc(name string) entities.Proc {
	if a.resolver == nil {
		return 0
	}
	return a.resolver.Resolve(name)
}

func (a *API) ShowConsoleMsg(msg string) bool {
	return a.caller.ShowConsoleMsg(a.proc(OpShowConsoleMsg), msg)
}

func (a *API) ShowMessageBox(msg, title string, typ int) int {
	return a.caller.ShowMessageBox(a.proc(OpShowMessageBox), msg, title, typ)
}

func (a *API) GetUserInputs(title string, captions []string, values *TextBuffer) bool {
	return a.caller.GetUserInputs(a.proc(OpGetUserInputs), title, captions, values)
}

func (a *API) UndoBeginBlock2(proj entities.Target) bool {
	return a.caller.UndoBeginBlock2(a.proc(OpUndoBeginBlock2), proj)
}

func (a *API) UndoEndBlock2(proj entities.Target, desc string, flags int) bool {
	return a.caller.UndoEndBlock2(a.proc(OpUndoEndBlock2), proj, desc, flags)
}

func (a *API) GetExtState(section, key string) string {
	return a.caller.GetExtState(a.proc(OpGetExtState), section, key)
}

func (a *API) SetExtState(section, key, value string, persist bool) bool {
	return a.caller.SetExtState(a.proc(OpSetExtState), section, key, value, persist)
}

func (a *API) HasExtState(section, key string) bool {
	return a.caller.HasExtState(a.proc(OpHasExtState), section, key)
}

func (a *API) DeleteExtState(section, key string, persist bool) bool {
	return a.caller.DeleteExtState(a.proc(OpDeleteExtState), section, key, persist)
}

func (a *API) CountSelectedTracks(proj entities.Target) int {
	return a.caller.CountSelectedTracks(a.proc(OpCountSelectedTracks), proj)
}

func (a *API) GetSelectedTrack(proj entities.Target, idx int) entities.Target {
	return a.caller.GetSelectedTrack(a.proc(OpGetSelectedTrack), proj, idx)
}

// SelectedTracks returns every selected track of proj in selection order.
// Tracks the host reports as nil are left out.
func (a *API) SelectedTracks(proj entities.Target) []entities.Target {
	countProc := a.proc(OpCountSelectedTracks)
	getProc := a.proc(OpGetSelectedTrack)

	n := a.caller.CountSelectedTracks(countProc, proj)
	if n <= 0 {
		return nil
	}
	tracks := make([]entities.Target, 0, n)
	for i := range n {
		if tr := a.caller.GetSelectedTrack(getProc, proj, i); !tr.IsNil() {
			tracks = append(tracks, tr)
		}
	}
	return tracks
}

func (a *API) GetTrackName(track entities.Target, buf *TextBuffer) bool {
	return a.caller.GetTrackName(a.proc(OpGetTrackName), track, buf)
}

func (a *API) GetMediaTrackInfoValue(track entities.Target, parm string) float64 {
	return a.caller.GetMediaTrackInfoValue(a.proc(OpGetMediaTrackInfoValue), track, parm)
}

func (a *API) TrackFXGetCount(track entities.Target) int {
	return a.caller.TrackFXGetCount(a.proc(OpTrackFXGetCount), track)
}

func (a *API) TrackFXGetFXName(track entities.Target, fx int, buf *TextBuffer) bool {
	return a.caller.TrackFXGetFXName(a.proc(OpTrackFXGetFXName), track, fx, buf)
}

func (a *API) TrackFXGetNumParams(track entities.Target, fx int) int {
	return a.caller.TrackFXGetNumParams(a.proc(OpTrackFXGetNumParams), track, fx)
}

func (a *API) TrackFXGetParamName(track entities.Target, fx, param int, buf *TextBuffer) bool {
	return a.caller.TrackFXGetParamName(a.proc(OpTrackFXGetParamName), track, fx, param, buf)
}

func (a *API) TrackFXGetParam(track entities.Target, fx, param int) (value, minVal, maxVal float64) {
	return a.caller.TrackFXGetParam(a.proc(OpTrackFXGetParam), track, fx, param)
}

func (a *API) TrackFXGetFormattedParamValue(track entities.Target, fx, param int, buf *TextBuffer) bool {
	return a.caller.TrackFXGetFormattedParamValue(a.proc(OpTrackFXGetFormattedParamValue), track, fx, param, buf)
}

func (a *API) TrackFXSetParam(track entities.Target, fx, param int, value float64) bool {
	return a.caller.TrackFXSetParam(a.proc(OpTrackFXSetParam), track, fx, param, value)
}

func (a *API) TrackFXFormatParamValue(track entities.Target, fx, param int, value float64, buf *TextBuffer) bool {
	return a.caller.TrackFXFormatParamValue(a.proc(OpTrackFXFormatParamValue), track, fx, param, value, buf)
}

var _ ports.ConsoleWriter = (*API)(nil)
