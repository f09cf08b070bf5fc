package batch

import (
	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
)

// readOps are the host operations every parameter read needs.
var readOps = []string{
	hostfuncs.OpTrackFXGetNumParams,
	hostfuncs.OpTrackFXGetParamName,
	hostfuncs.OpTrackFXGetParam,
	hostfuncs.OpTrackFXGetFormattedParamValue,
}

// readProcs are the resolved entry points of readOps.
type readProcs struct {
	count, name, value, formatted entities.Proc
}

func (e *Engine) resolveRead(log *zap.Logger) (readProcs, error) {
	procs, err := e.resolve(log, readOps...)
	if err != nil {
		return readProcs{}, err
	}
	return readProcs{count: procs[0], name: procs[1], value: procs[2], formatted: procs[3]}, nil
}

// ReadParameters reads every parameter of effect feature on target into out.
//
// Invalid arguments and unresolvable operations return an error and write
// nothing. A host count of zero or less is a successful empty read. When the
// host has more parameters than len(out), the first len(out) are read and the
// report is marked Truncated; this is still a success. A parameter whose
// name, value or text cannot be read keeps the empty/zero defaults.
func (e *Engine) ReadParameters(target entities.Target, feature int, out []entities.ParameterDescriptor) (ReadReport, error) {
	const op = "read parameters"
	switch {
	case target.IsNil():
		return ReadReport{}, invalid(op, "target", "nil handle")
	case len(out) == 0:
		return ReadReport{}, invalid(op, "output", "no capacity")
	case feature < 0:
		return ReadReport{}, invalid(op, "feature index", "negative")
	}

	id, log := e.begin(KindRead)
	log = log.With(zap.Stringer("target", target), zap.Int("feature", feature))

	procs, err := e.resolveRead(log)
	if err != nil {
		return ReadReport{ID: id}, err
	}

	available := e.caller.TrackFXGetNumParams(procs.count, target, feature)
	if available <= 0 {
		log.Debug("feature has no parameters")
		e.observe(KindRead, 0, 0)
		return ReadReport{ID: id}, nil
	}

	n, truncated := e.clamp(available, len(out))
	if truncated {
		log.Warn("parameter read truncated",
			zap.Int("available", available),
			zap.Int("capacity", len(out)),
			zap.Int("read", n),
		)
		e.truncated(KindRead)
	}

	failures := e.readInto(procs, target, feature, out[:n])
	if failures > 0 {
		log.Debug("some parameters were only partly read", zap.Int("failures", failures))
	}
	log.Debug("parameters read", zap.Int("count", n))
	e.observe(KindRead, n, failures)

	return ReadReport{ID: id, Count: n, Available: available, Truncated: truncated}, nil
}

// clamp limits a host count to the output capacity and the configured cap.
func (e *Engine) clamp(available, capacity int) (int, bool) {
	n := available
	if e.maxParameters > 0 && n > e.maxParameters {
		n = e.maxParameters
	}
	if n > capacity {
		n = capacity
	}
	return n, n < available
}

// readInto fills out with parameters 0..len(out)-1 and returns how many had
// at least one failed sub-call.
func (e *Engine) readInto(procs readProcs, target entities.Target, feature int, out []entities.ParameterDescriptor) int {
	name := e.textBuffer()
	formatted := e.textBuffer()
	failures := 0

	for i := range out {
		okName := e.caller.TrackFXGetParamName(procs.name, target, feature, i, name)
		value, lo, hi := e.caller.TrackFXGetParam(procs.value, target, feature, i)
		okText := e.caller.TrackFXGetFormattedParamValue(procs.formatted, target, feature, i, formatted)

		out[i] = entities.ParameterDescriptor{
			Index:     i,
			Name:      name.String(),
			Value:     value,
			Min:       lo,
			Max:       hi,
			Formatted: formatted.String(),
		}
		if !okName || !okText {
			failures++
		}
	}
	return failures
}
