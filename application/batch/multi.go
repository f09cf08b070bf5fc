package batch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
)

// ReadTargets reads one effect per target into a single flat slice.
//
// Target t's descriptors start at Offsets[t], the sum of the counts of the
// targets before it. A nil target is skipped with a count of zero and the
// remaining targets are still read. When the combined counts exceed len(out)
// the later targets are clamped and the report is marked Truncated.
func (e *Engine) ReadTargets(reads []entities.TargetRead, out []entities.ParameterDescriptor) (MultiReadReport, error) {
	const op = "read targets"
	switch {
	case len(reads) == 0:
		return MultiReadReport{}, invalid(op, "targets", "empty")
	case len(out) == 0:
		return MultiReadReport{}, invalid(op, "output", "no capacity")
	}

	id, log := e.begin(KindRead)
	log = log.With(zap.Int("targets", len(reads)))

	procs, err := e.resolveRead(log)
	if err != nil {
		return MultiReadReport{ID: id}, err
	}

	report := MultiReadReport{
		ID:      id,
		Offsets: make([]int, len(reads)),
		Counts:  make([]int, len(reads)),
	}

	// Count pass: every count is known before any descriptor is written.
	available := make([]int, len(reads))
	for t, r := range reads {
		if r.Target.IsNil() || r.FeatureIndex < 0 {
			report.Skipped = append(report.Skipped, t)
			log.Warn("target skipped", zap.Int("index", t), zap.Stringer("target", r.Target))
			continue
		}
		available[t] = max(e.caller.TrackFXGetNumParams(procs.count, r.Target, r.FeatureIndex), 0)
	}

	// Fill pass.
	offset, failures := 0, 0
	for t, r := range reads {
		report.Offsets[t] = offset
		if available[t] == 0 {
			continue
		}
		n, truncated := e.clamp(available[t], len(out)-offset)
		if truncated {
			report.Truncated = true
			log.Warn("parameter read truncated",
				zap.Int("index", t),
				zap.Int("available", available[t]),
				zap.Int("read", n),
			)
		}
		if n == 0 {
			continue
		}
		failures += e.readInto(procs, r.Target, r.FeatureIndex, out[offset:offset+n])
		report.Counts[t] = n
		offset += n
	}
	report.Total = offset

	if report.Truncated {
		e.truncated(KindRead)
	}
	log.Debug("targets read", zap.Int("total", report.Total), zap.Ints("skipped", report.Skipped))
	e.observe(KindRead, report.Total, failures)
	return report, nil
}

// ApplyTargets applies changes addressed to targets by TargetIndex.
//
// A change that names a nil target is marked skipped and does not make the
// batch fail. A change whose TargetIndex is out of range is marked failed.
// The others are still attempted. An empty list succeeds without touching
// the host.
func (e *Engine) ApplyTargets(targets []entities.Target, changes []entities.ParameterChange) (ApplyReport, error) {
	const op = "apply targets"
	switch {
	case len(changes) == 0:
		return ApplyReport{}, nil
	case len(targets) == 0:
		return ApplyReport{}, invalid(op, "targets", "empty")
	}

	id, log := e.begin(KindApply)
	log = log.With(zap.Int("targets", len(targets)))

	procs, err := e.resolve(log, hostfuncs.OpTrackFXSetParam)
	if err != nil {
		return ApplyReport{ID: id}, err
	}

	report := e.apply(log, procs[0], changes, func(ch entities.ParameterChange) (entities.Target, string) {
		return pickTarget(targets, ch.TargetIndex)
	})
	report.ID = id
	return report, nil
}

// ApplyTargetsWithUndo runs ApplyTargets inside one undo block named label
// on the current project. The block is closed even if nothing was applied.
// A host without the undo operations still gets the changes, just without
// the block.
func (e *Engine) ApplyTargetsWithUndo(targets []entities.Target, changes []entities.ParameterChange, label string) (ApplyReport, error) {
	const op = "apply targets with undo"
	switch {
	case label == "":
		return ApplyReport{}, invalid(op, "label", "empty")
	case len(changes) == 0:
		return ApplyReport{}, nil
	case len(targets) == 0:
		return ApplyReport{}, invalid(op, "targets", "empty")
	}

	_, log := e.begin(KindApply)
	log = log.With(zap.String("undo", label))

	if begin := e.optional(log, hostfuncs.OpUndoBeginBlock2); !begin.IsNil() {
		e.caller.UndoBeginBlock2(begin, entities.CurrentProject)
	}
	if end := e.optional(log, hostfuncs.OpUndoEndBlock2); !end.IsNil() {
		defer e.caller.UndoEndBlock2(end, entities.CurrentProject, label, undoFlags)
	}

	return e.ApplyTargets(targets, changes)
}

// undoFlags is passed to Undo_EndBlock2; 0 lets the host decide what the
// block touched.
const undoFlags = 0

// FormatTargets formats requests addressed to targets by TargetIndex.
// Requests for missing or nil targets yield empty text with OK unset.
func (e *Engine) FormatTargets(targets []entities.Target, requests []entities.FormatRequest) ([]entities.FormatResult, error) {
	const op = "format targets"
	switch {
	case len(requests) == 0:
		return []entities.FormatResult{}, nil
	case len(targets) == 0:
		return nil, invalid(op, "targets", "empty")
	}

	_, log := e.begin(KindFormat)
	procs, err := e.resolve(log, hostfuncs.OpTrackFXFormatParamValue)
	if err != nil {
		return nil, err
	}
	return e.format(log, procs[0], requests, func(req entities.FormatRequest) entities.Target {
		target, _ := pickTarget(targets, req.TargetIndex)
		return target
	}), nil
}

// pickTarget returns targets[idx], which may be nil, or a reason idx cannot
// address any target.
func pickTarget(targets []entities.Target, idx int) (entities.Target, string) {
	if idx < 0 || idx >= len(targets) {
		return 0, fmt.Sprintf("target index %d out of range", idx)
	}
	return targets[idx], ""
}
