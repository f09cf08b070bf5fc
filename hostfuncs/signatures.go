package hostfuncs

// Host operation names, exactly as the bootstrap lookup expects them.
const (
	OpGetFunc                       = "GetFunc"
	OpShowConsoleMsg                = "ShowConsoleMsg"
	OpShowMessageBox                = "ShowMessageBox"
	OpGetUserInputs                 = "GetUserInputs"
	OpUndoBeginBlock2               = "Undo_BeginBlock2"
	OpUndoEndBlock2                 = "Undo_EndBlock2"
	OpGetExtState                   = "GetExtState"
	OpSetExtState                   = "SetExtState"
	OpHasExtState                   = "HasExtState"
	OpDeleteExtState                = "DeleteExtState"
	OpCountSelectedTracks           = "CountSelectedTracks"
	OpGetSelectedTrack              = "GetSelectedTrack"
	OpGetTrackName                  = "GetTrackName"
	OpGetMediaTrackInfoValue        = "GetMediaTrackInfo_Value"
	OpTrackFXGetCount               = "TrackFX_GetCount"
	OpTrackFXGetFXName              = "TrackFX_GetFXName"
	OpTrackFXGetNumParams           = "TrackFX_GetNumParams"
	OpTrackFXGetParamName           = "TrackFX_GetParamName"
	OpTrackFXGetParam               = "TrackFX_GetParam"
	OpTrackFXGetFormattedParamValue = "TrackFX_GetFormattedParamValue"
	OpTrackFXSetParam               = "TrackFX_SetParam"
	OpTrackFXFormatParamValue       = "TrackFX_FormatParamValue"
)

// Go signatures of the host operations. C int maps to int32, pointers to
// host objects map to uintptr, const char* arguments map to string and
// caller-owned char* buffers map to *byte plus an int32 size.
//
// These are aliases, not defined types, so that a function literal with the
// same shape (for example in a test double) is assignable without conversion.
type (
	// void *GetFunc(const char *name)
	GetFuncFunc = func(name string) uintptr

	// void ShowConsoleMsg(const char *msg)
	ShowConsoleMsgFunc = func(msg string)

	// int ShowMessageBox(const char *msg, const char *title, int type)
	ShowMessageBoxFunc = func(msg, title string, typ int32) int32

	// bool GetUserInputs(const char *title, int num_inputs, const char *captions_csv, char *retvals_csv, int retvals_csv_sz)
	GetUserInputsFunc = func(title string, numInputs int32, captions string, values *byte, valuesSize int32) bool

	// void Undo_BeginBlock2(ReaProject *proj)
	UndoBeginBlock2Func = func(proj uintptr)

	// void Undo_EndBlock2(ReaProject *proj, const char *descchange, int extraflags)
	UndoEndBlock2Func = func(proj uintptr, desc string, flags int32)

	// const char *GetExtState(const char *section, const char *key)
	GetExtStateFunc = func(section, key string) string

	// void SetExtState(const char *section, const char *key, const char *value, bool persist)
	SetExtStateFunc = func(section, key, value string, persist bool)

	// bool HasExtState(const char *section, const char *key)
	HasExtStateFunc = func(section, key string) bool

	// void DeleteExtState(const char *section, const char *key, bool persist)
	DeleteExtStateFunc = func(section, key string, persist bool)

	// int CountSelectedTracks(ReaProject *proj)
	CountSelectedTracksFunc = func(proj uintptr) int32

	// MediaTrack *GetSelectedTrack(ReaProject *proj, int seltrackidx)
	GetSelectedTrackFunc = func(proj uintptr, idx int32) uintptr

	// bool GetTrackName(MediaTrack *track, char *bufOut, int bufOut_sz)
	GetTrackNameFunc = func(track uintptr, buf *byte, size int32) bool

	// double GetMediaTrackInfo_Value(MediaTrack *tr, const char *parmname)
	GetMediaTrackInfoValueFunc = func(track uintptr, parm string) float64

	// int TrackFX_GetCount(MediaTrack *track)
	TrackFXGetCountFunc = func(track uintptr) int32

	// bool TrackFX_GetFXName(MediaTrack *track, int fx, char *bufOut, int bufOut_sz)
	TrackFXGetFXNameFunc = func(track uintptr, fx int32, buf *byte, size int32) bool

	// int TrackFX_GetNumParams(MediaTrack *track, int fx)
	TrackFXGetNumParamsFunc = func(track uintptr, fx int32) int32

	// bool TrackFX_GetParamName(MediaTrack *track, int fx, int param, char *bufOut, int bufOut_sz)
	TrackFXGetParamNameFunc = func(track uintptr, fx, param int32, buf *byte, size int32) bool

	// double TrackFX_GetParam(MediaTrack *track, int fx, int param, double *minvalOut, double *maxvalOut)
	TrackFXGetParamFunc = func(track uintptr, fx, param int32, minOut, maxOut *float64) float64

	// bool TrackFX_GetFormattedParamValue(MediaTrack *track, int fx, int param, char *bufOut, int bufOut_sz)
	TrackFXGetFormattedParamValueFunc = func(track uintptr, fx, param int32, buf *byte, size int32) bool

	// bool TrackFX_SetParam(MediaTrack *track, int fx, int param, double val)
	TrackFXSetParamFunc = func(track uintptr, fx, param int32, val float64) bool

	// bool TrackFX_FormatParamValue(MediaTrack *track, int fx, int param, double val, char *bufOut, int bufOut_sz)
	TrackFXFormatParamValueFunc = func(track uintptr, fx, param int32, val float64, buf *byte, size int32) bool
)
