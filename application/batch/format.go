package batch

import (
	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
)

// FormatValues renders each request's value as the host would display it,
// without changing any parameter. TargetIndex is ignored.
//
// A request the host cannot format yields empty text with OK unset; it never
// fails the call. An empty list succeeds without touching the host.
func (e *Engine) FormatValues(target entities.Target, requests []entities.FormatRequest) ([]entities.FormatResult, error) {
	const op = "format values"
	switch {
	case target.IsNil():
		return nil, invalid(op, "target", "nil handle")
	case len(requests) == 0:
		return []entities.FormatResult{}, nil
	}

	_, log := e.begin(KindFormat)
	log = log.With(zap.Stringer("target", target))

	procs, err := e.resolve(log, hostfuncs.OpTrackFXFormatParamValue)
	if err != nil {
		return nil, err
	}
	return e.format(log, procs[0], requests, func(entities.FormatRequest) entities.Target {
		return target
	}), nil
}

// format runs the best-effort loop. pick returns the target of a request or
// a nil target to skip it.
func (e *Engine) format(log *zap.Logger, proc entities.Proc, requests []entities.FormatRequest,
	pick func(entities.FormatRequest) entities.Target,
) []entities.FormatResult {
	results := make([]entities.FormatResult, len(requests))
	buf := e.textBuffer()
	misses := 0

	for i, req := range requests {
		target := pick(req)
		ok := !target.IsNil() &&
			e.caller.TrackFXFormatParamValue(proc, target, req.FeatureIndex, req.ParameterIndex, req.Value, buf)
		if !ok {
			misses++
			continue
		}
		results[i] = entities.FormatResult{Text: buf.String(), OK: true}
	}

	if misses > 0 {
		log.Debug("some values could not be formatted", zap.Int("misses", misses))
	}
	e.observe(KindFormat, len(requests), misses)
	return results
}
