package entities

// ItemStatus represents the outcome of one item of a batch request.
type ItemStatus string

const (
	// ItemApplied indicates the host accepted the item.
	ItemApplied ItemStatus = "applied"

	// ItemFailed indicates the host rejected the item.
	ItemFailed ItemStatus = "failed"

	// ItemSkipped indicates the item was never sent to the host, for example
	// because its target handle was null.
	ItemSkipped ItemStatus = "skipped"
)

// OK returns true if the item was applied.
func (s ItemStatus) OK() bool {
	return s == ItemApplied
}

// NoneFailed returns true if no status in statuses is ItemFailed. Skipped
// items were never sent to the host and do not count as failures.
func NoneFailed(statuses []ItemStatus) bool {
	for _, s := range statuses {
		if s == ItemFailed {
			return false
		}
	}
	return true
}

// IndicesOf returns the positions of every status equal to want.
func IndicesOf(statuses []ItemStatus, want ItemStatus) []int {
	var idx []int
	for i, s := range statuses {
		if s == want {
			idx = append(idx, i)
		}
	}
	return idx
}
