package hostfuncs

// SignatureBundle is a pre-configured set of related host operations.
// Bundles allow registering multiple signatures at once.
type SignatureBundle interface {
	// Signatures returns the signatures in the bundle.
	Signatures() []Signature
}

// staticBundle implements SignatureBundle with a fixed set of signatures.
type staticBundle struct {
	signatures []Signature
}

func (b *staticBundle) Signatures() []Signature {
	return b.signatures
}

// UIBundle returns the console and dialog operations:
// ShowConsoleMsg, ShowMessageBox, GetUserInputs.
func UIBundle() SignatureBundle {
	return &staticBundle{signatures: []Signature{
		SignatureOf[ShowConsoleMsgFunc](OpShowConsoleMsg),
		SignatureOf[ShowMessageBoxFunc](OpShowMessageBox),
		SignatureOf[GetUserInputsFunc](OpGetUserInputs),
	}}
}

// UndoBundle returns the undo bracketing operations:
// Undo_BeginBlock2, Undo_EndBlock2.
func UndoBundle() SignatureBundle {
	return &staticBundle{signatures: []Signature{
		SignatureOf[UndoBeginBlock2Func](OpUndoBeginBlock2),
		SignatureOf[UndoEndBlock2Func](OpUndoEndBlock2),
	}}
}

// ExtStateBundle returns the persisted key/value operations:
// GetExtState, SetExtState, HasExtState, DeleteExtState.
func ExtStateBundle() SignatureBundle {
	return &staticBundle{signatures: []Signature{
		SignatureOf[GetExtStateFunc](OpGetExtState),
		SignatureOf[SetExtStateFunc](OpSetExtState),
		SignatureOf[HasExtStateFunc](OpHasExtState),
		SignatureOf[DeleteExtStateFunc](OpDeleteExtState),
	}}
}

// TrackBundle returns the track query operations:
// CountSelectedTracks, GetSelectedTrack, GetTrackName, GetMediaTrackInfo_Value.
func TrackBundle() SignatureBundle {
	return &staticBundle{signatures: []Signature{
		SignatureOf[CountSelectedTracksFunc](OpCountSelectedTracks),
		SignatureOf[GetSelectedTrackFunc](OpGetSelectedTrack),
		SignatureOf[GetTrackNameFunc](OpGetTrackName),
		SignatureOf[GetMediaTrackInfoValueFunc](OpGetMediaTrackInfoValue),
	}}
}

// FXBundle returns the effect and parameter operations.
func FXBundle() SignatureBundle {
	return &staticBundle{signatures: []Signature{
		SignatureOf[TrackFXGetCountFunc](OpTrackFXGetCount),
		SignatureOf[TrackFXGetFXNameFunc](OpTrackFXGetFXName),
		SignatureOf[TrackFXGetNumParamsFunc](OpTrackFXGetNumParams),
		SignatureOf[TrackFXGetParamNameFunc](OpTrackFXGetParamName),
		SignatureOf[TrackFXGetParamFunc](OpTrackFXGetParam),
		SignatureOf[TrackFXGetFormattedParamValueFunc](OpTrackFXGetFormattedParamValue),
		SignatureOf[TrackFXSetParamFunc](OpTrackFXSetParam),
		SignatureOf[TrackFXFormatParamValueFunc](OpTrackFXFormatParamValue),
	}}
}

// BootstrapBundle returns the bootstrap lookup itself: GetFunc.
func BootstrapBundle() SignatureBundle {
	return &staticBundle{signatures: []Signature{
		SignatureOf[GetFuncFunc](OpGetFunc),
	}}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []SignatureBundle
}

func (b *compositeBundle) Signatures() []Signature {
	var result []Signature
	for _, bundle := range b.bundles {
		result = append(result, bundle.Signatures()...)
	}
	return result
}

// AllBundles returns a bundle containing every built-in operation.
func AllBundles() SignatureBundle {
	return &compositeBundle{
		bundles: []SignatureBundle{
			BootstrapBundle(),
			UIBundle(),
			UndoBundle(),
			ExtStateBundle(),
			TrackBundle(),
			FXBundle(),
		},
	}
}

// WithBundle registers all signatures from a bundle.
func WithBundle(bundle SignatureBundle) CatalogOption {
	return func(b *catalogBuilder) {
		for _, sig := range bundle.Signatures() {
			if err := b.add(sig); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
