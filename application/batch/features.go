package batch

import (
	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
)

// ListFeatures returns every effect on target with its name and parameter
// count. An effect whose name cannot be read is listed with an empty name.
func (e *Engine) ListFeatures(target entities.Target) ([]entities.FeatureInfo, error) {
	if target.IsNil() {
		return nil, invalid("list features", "target", "nil handle")
	}

	_, log := e.begin(KindFeatures)
	log = log.With(zap.Stringer("target", target))

	procs, err := e.resolve(log,
		hostfuncs.OpTrackFXGetCount,
		hostfuncs.OpTrackFXGetFXName,
		hostfuncs.OpTrackFXGetNumParams,
	)
	if err != nil {
		return nil, err
	}

	n := e.caller.TrackFXGetCount(procs[0], target)
	if n <= 0 {
		e.observe(KindFeatures, 0, 0)
		return nil, nil
	}

	buf := e.textBuffer()
	features := make([]entities.FeatureInfo, n)
	misses := 0
	for i := range features {
		if !e.caller.TrackFXGetFXName(procs[1], target, i, buf) {
			misses++
		}
		features[i] = entities.FeatureInfo{
			Index:      i,
			Name:       buf.String(),
			Parameters: e.caller.TrackFXGetNumParams(procs[2], target, i),
		}
	}
	e.observe(KindFeatures, n, misses)
	return features, nil
}
