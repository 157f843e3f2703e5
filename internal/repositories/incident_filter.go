package repositories

import (
	sq "github.com/Masterminds/squirrel"

	"cmdb-system/internal/entities"
	"cmdb-system/pkg/types"
)

// filteredIncidents builds the shared base query for every incident
// aggregation and listing: incidents aliased "i" with the catalog joins the
// filter predicates refer to. Severity and resolver group are always
// LEFT JOINed so the same predicate set works for every dimension.
func filteredIncidents(columns ...string) sq.SelectBuilder {
	return sq.Select(columns...).
		From("incidents i").
		LeftJoin("severities sev ON i.severity_id = sev.id").
		LeftJoin("resolver_groups rg ON i.resolver_group_id = rg.id")
}

// incidentPredicates translates the resolved filter into squirrel
// predicates. Absent fields place no restriction; an inverted date range is
// deliberately kept and simply matches nothing.
func incidentPredicates(f types.IncidentFilter) []sq.Sqlizer {
	var preds []sq.Sqlizer

	if f.ApplicationID != nil {
		preds = append(preds, sq.Eq{"i.application_id": *f.ApplicationID})
	}
	if f.DateFrom != nil {
		preds = append(preds, sq.GtOrEq{"i.resolved_at": *f.DateFrom})
	}
	if f.DateTo != nil {
		// inclusive day bound
		preds = append(preds, sq.Lt{"i.resolved_at": f.DateTo.AddDate(0, 0, 1)})
	}
	if f.Severity != nil {
		preds = append(preds, sq.Eq{"sev.name": *f.Severity})
	}
	if f.ClosureCodeID != nil {
		preds = append(preds, sq.Eq{"i.closure_code_id": *f.ClosureCodeID})
	}
	if f.GroupFlag != nil {
		if *f.GroupFlag {
			preds = append(preds, sq.Eq{"rg.name": entities.GroupINDRAD})
		} else {
			preds = append(preds, sq.Or{
				sq.NotEq{"rg.name": entities.GroupINDRAD},
				sq.Eq{"rg.name": nil},
			})
		}
	}

	return preds
}

func applyPredicates(b sq.SelectBuilder, preds []sq.Sqlizer) sq.SelectBuilder {
	for _, p := range preds {
		b = b.Where(p)
	}
	return b
}
