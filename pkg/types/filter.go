package types

import "time"

// IncidentFilter is the resolved set of optional restrictions applied before
// aggregation. A nil field means "no restriction on that dimension"; all set
// fields combine with AND.
type IncidentFilter struct {
	ApplicationID *uint64
	DateFrom      *time.Time
	DateTo        *time.Time
	Severity      *string
	ClosureCodeID *uint64
	GroupFlag     *bool
}

// IsZero reports whether no restriction is set.
func (f IncidentFilter) IsZero() bool {
	return f.ApplicationID == nil && f.DateFrom == nil && f.DateTo == nil &&
		f.Severity == nil && f.ClosureCodeID == nil && f.GroupFlag == nil
}

// ListFilter extends the dashboard filter with the list-only parameters of
// the incident grid.
type ListFilter struct {
	IncidentFilter
	CodeSearch string
	Limit      uint64
	Offset     uint64
	Page       uint64
}
