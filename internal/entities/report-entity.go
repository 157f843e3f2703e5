package entities

import (
	"database/sql"
	"time"
)

// ReportItem is one row of the incident report export, joined across the
// catalog tables. Nullable columns keep their sql types so the exporter can
// render the "N/A" placeholders.
type ReportItem struct {
	IncidentCode       string         `db:"incident_code"`
	ApplicationName    sql.NullString `db:"application_name"`
	AppCriticality     sql.NullString `db:"app_criticality"`
	SeverityName       sql.NullString `db:"severity_name"`
	ResolverGroupName  sql.NullString `db:"resolver_group_name"`
	ClosureCode        sql.NullString `db:"closure_code"`
	ClosureDescription sql.NullString `db:"closure_description"`
	ResolvedAt         sql.NullTime   `db:"resolved_at"`
	OpenedAt           sql.NullTime   `db:"opened_at"`
}

// ResolutionMonth returns the Spanish month name of the resolution date,
// empty when the incident is unresolved.
func (r ReportItem) ResolutionMonth() string {
	if !r.ResolvedAt.Valid {
		return ""
	}
	return SpanishMonth(r.ResolvedAt.Time.Month())
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func SpanishMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return spanishMonths[m-1]
}
