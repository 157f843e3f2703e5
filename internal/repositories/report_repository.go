package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cmdb-system/internal/entities"
	"cmdb-system/pkg/types"
)

type ReportRepositoryInterface interface {
	GetReportItems(ctx context.Context, filter types.IncidentFilter) ([]entities.ReportItem, error)
}

type reportRepository struct{ storage *pgxpool.Pool }

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{storage: storage}
}

// GetReportItems streams the full joined view of the filtered incident set,
// one row per incident, ordered the way the export lists them.
func (r *reportRepository) GetReportItems(ctx context.Context, filter types.IncidentFilter) ([]entities.ReportItem, error) {
	builder := filteredIncidents(
		"i.code AS incident_code",
		"a.name AS application_name",
		"a.criticality AS app_criticality",
		"sev.name AS severity_name",
		"rg.name AS resolver_group_name",
		"cc.code AS closure_code",
		"cc.description AS closure_description",
		"i.resolved_at",
		"i.opened_at",
	).
		LeftJoin("applications a ON i.application_id = a.id").
		LeftJoin("closure_codes cc ON i.closure_code_id = cc.id")

	query, args, err := applyPredicates(builder, incidentPredicates(filter)).
		OrderBy("i.resolved_at ASC NULLS LAST", "i.id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[entities.ReportItem])
}
