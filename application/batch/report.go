package batch

import (
	"go.uber.org/multierr"

	"github.com/reglet-dev/reaper-bridge/domain/entities"
)

// ReadReport describes a single-target read.
type ReadReport struct {
	// ID correlates the report with the batch's log lines.
	ID string

	// Count is the number of descriptors written to the output slice.
	Count int

	// Available is the parameter count the host reported. It exceeds Count
	// only when the output was truncated.
	Available int

	// Truncated is set when the host had more parameters than fit.
	Truncated bool
}

// MultiReadReport describes a read across several targets into one flat
// output slice. Offsets[t] and Counts[t] locate target t's descriptors.
type MultiReadReport struct {
	ID        string
	Offsets   []int
	Counts    []int
	Skipped   []int
	Total     int
	Truncated bool
}

// Range returns the slice bounds of target t's descriptors.
func (r MultiReadReport) Range(t int) (start, end int) {
	if t < 0 || t >= len(r.Offsets) {
		return 0, 0
	}
	return r.Offsets[t], r.Offsets[t] + r.Counts[t]
}

// ApplyReport holds one status per requested change, in request order.
type ApplyReport struct {
	ID       string
	Statuses []entities.ItemStatus
	errs     []error
}

// OK reports whether no change failed. Changes skipped because their target
// was nil do not count against it.
func (r ApplyReport) OK() bool {
	return entities.NoneFailed(r.Statuses)
}

// Failed returns the indices of changes the host rejected or that named a
// target index out of range.
func (r ApplyReport) Failed() []int {
	return entities.IndicesOf(r.Statuses, entities.ItemFailed)
}

// Skipped returns the indices of changes addressed to a nil target.
func (r ApplyReport) Skipped() []int {
	return entities.IndicesOf(r.Statuses, entities.ItemSkipped)
}

// Err combines the per-change failures, or returns nil. Skipped changes
// contribute nothing.
func (r ApplyReport) Err() error {
	return multierr.Combine(r.errs...)
}
