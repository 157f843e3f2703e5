package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cmdb-system/internal/entities"
	"cmdb-system/pkg/types"
)

const topBuckets = 15

type DashboardRepositoryInterface interface {
	CountAll(ctx context.Context) (int64, error)
	CountFiltered(ctx context.Context, filter types.IncidentFilter) (int64, error)
	CountByApplication(ctx context.Context, filter types.IncidentFilter) ([]types.CountByGroup, error)
	CountByMonth(ctx context.Context, filter types.IncidentFilter) ([]types.CountByGroup, error)
	CountBySeverity(ctx context.Context, filter types.IncidentFilter) ([]types.CountByGroup, error)
	CountByClosureCode(ctx context.Context, filter types.IncidentFilter) ([]types.CountByGroup, error)
	CountByGroupFlag(ctx context.Context, filter types.IncidentFilter) (inGroup, others int64, err error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

func (r *DashboardRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM incidents").Scan(&total)
	return total, err
}

func (r *DashboardRepository) CountFiltered(ctx context.Context, filter types.IncidentFilter) (int64, error) {
	b := applyPredicates(filteredIncidents("COUNT(i.id)"), incidentPredicates(filter))
	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, err
	}

	var total int64
	err = r.storage.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

// CountByApplication returns the top buckets by count; ties break on the
// application id so the ordering is reproducible.
func (r *DashboardRepository) CountByApplication(ctx context.Context, filter types.IncidentFilter) ([]types.CountByGroup, error) {
	b := filteredIncidents("a.name AS group_name", "COUNT(i.id) AS count").
		Join("applications a ON i.application_id = a.id").
		GroupBy("a.id", "a.name").
		OrderBy("count DESC", "a.id ASC").
		Limit(topBuckets)
	return r.collectBuckets(ctx, applyPredicates(b, incidentPredicates(filter)))
}

// CountByMonth groups by calendar month of the resolution date, ascending.
// The YYYY-MM label sorts chronologically as text.
func (r *DashboardRepository) CountByMonth(ctx context.Context, filter types.IncidentFilter) ([]types.CountByGroup, error) {
	b := filteredIncidents(
		"to_char(date_trunc('month', i.resolved_at), 'YYYY-MM') AS group_name",
		"COUNT(i.id) AS count",
	).
		Where("i.resolved_at IS NOT NULL").
		GroupBy("1").
		OrderBy("group_name ASC")
	return r.collectBuckets(ctx, applyPredicates(b, incidentPredicates(filter)))
}

// CountBySeverity orders by the fixed domain rank, never alphabetically.
func (r *DashboardRepository) CountBySeverity(ctx context.Context, filter types.IncidentFilter) ([]types.CountByGroup, error) {
	b := filteredIncidents("sev.name AS group_name", "COUNT(i.id) AS count").
		Where("i.severity_id IS NOT NULL").
		GroupBy("sev.rank", "sev.name").
		OrderBy("sev.rank ASC")
	return r.collectBuckets(ctx, applyPredicates(b, incidentPredicates(filter)))
}

func (r *DashboardRepository) CountByClosureCode(ctx context.Context, filter types.IncidentFilter) ([]types.CountByGroup, error) {
	b := filteredIncidents("cc.code AS group_name", "COUNT(i.id) AS count").
		Join("closure_codes cc ON i.closure_code_id = cc.id").
		GroupBy("cc.id", "cc.code").
		OrderBy("count DESC", "cc.id ASC").
		Limit(topBuckets)
	return r.collectBuckets(ctx, applyPredicates(b, incidentPredicates(filter)))
}

// CountByGroupFlag splits the filtered incidents into the INDRA_D bucket
// and everything else in a single pass.
func (r *DashboardRepository) CountByGroupFlag(ctx context.Context, filter types.IncidentFilter) (int64, int64, error) {
	b := filteredIncidents(
		"COUNT(i.id) FILTER (WHERE rg.name = '"+entities.GroupINDRAD+"') AS in_group",
		"COUNT(i.id) FILTER (WHERE rg.name IS NULL OR rg.name <> '"+entities.GroupINDRAD+"') AS others",
	)
	query, args, err := applyPredicates(b, incidentPredicates(filter)).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, 0, err
	}

	var inGroup, others int64
	err = r.storage.QueryRow(ctx, query, args...).Scan(&inGroup, &others)
	return inGroup, others, err
}

func (r *DashboardRepository) collectBuckets(ctx context.Context, b sq.SelectBuilder) ([]types.CountByGroup, error) {
	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[types.CountByGroup])
}
