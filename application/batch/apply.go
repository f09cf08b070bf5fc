package batch

import (
	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/errors"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
)

// ApplyChanges sets every requested parameter on target.
//
// TargetIndex is ignored. Every change is attempted even after a failure;
// the report holds one status per change and OK is true only when none of
// them failed. An empty list succeeds without touching the host. An error is
// returned only for invalid arguments or when the set operation cannot be
// resolved, in which case nothing is attempted.
func (e *Engine) ApplyChanges(target entities.Target, changes []entities.ParameterChange) (ApplyReport, error) {
	const op = "apply changes"
	switch {
	case target.IsNil():
		return ApplyReport{}, invalid(op, "target", "nil handle")
	case len(changes) == 0:
		return ApplyReport{}, nil
	}

	id, log := e.begin(KindApply)
	log = log.With(zap.Stringer("target", target))

	procs, err := e.resolve(log, hostfuncs.OpTrackFXSetParam)
	if err != nil {
		return ApplyReport{ID: id}, err
	}

	report := e.apply(log, procs[0], changes, func(entities.ParameterChange) (entities.Target, string) {
		return target, ""
	})
	report.ID = id
	return report, nil
}

// apply runs the best-effort loop. pick returns the target for a change, or
// a reason the change cannot be addressed. A nil target with no reason skips
// the change without counting it as a failure.
func (e *Engine) apply(log *zap.Logger, set entities.Proc, changes []entities.ParameterChange,
	pick func(entities.ParameterChange) (entities.Target, string),
) ApplyReport {
	report := ApplyReport{Statuses: make([]entities.ItemStatus, len(changes))}
	skipped := 0

	for i, ch := range changes {
		target, reason := pick(ch)
		switch {
		case reason != "":
			report.Statuses[i] = entities.ItemFailed
			report.errs = append(report.errs, &errors.ItemError{Op: KindApply, Index: i, Reason: reason})
			log.Warn("change rejected", zap.Int("item", i), zap.String("reason", reason))
			continue
		case target.IsNil():
			report.Statuses[i] = entities.ItemSkipped
			skipped++
			log.Warn("change skipped, target is nil", zap.Int("item", i), zap.Int("target_index", ch.TargetIndex))
			continue
		}

		if e.caller.TrackFXSetParam(set, target, ch.FeatureIndex, ch.ParameterIndex, ch.Value) {
			report.Statuses[i] = entities.ItemApplied
			continue
		}

		report.Statuses[i] = entities.ItemFailed
		report.errs = append(report.errs, &errors.ItemError{Op: KindApply, Index: i, Reason: "host rejected value"})
		log.Warn("change failed",
			zap.Int("item", i),
			zap.Int("feature", ch.FeatureIndex),
			zap.Int("parameter", ch.ParameterIndex),
			zap.Float64("value", ch.Value),
		)
	}

	failed := len(report.errs)
	if failed == 0 {
		log.Debug("changes applied", zap.Int("count", len(changes)), zap.Int("skipped", skipped))
	} else {
		log.Warn("changes partly applied",
			zap.Int("count", len(changes)),
			zap.Int("failed", failed),
			zap.Int("skipped", skipped),
		)
	}
	e.observe(KindApply, len(changes), failed)
	return report
}
