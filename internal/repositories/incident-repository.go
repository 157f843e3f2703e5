package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	apperrors "cmdb-system/pkg/errors"
	"cmdb-system/pkg/types"
	"cmdb-system/pkg/utils"
)

type dbIncident struct {
	ID            uint64         `db:"id"`
	Code          string         `db:"code"`
	Description   sql.NullString `db:"description"`
	Application   sql.NullString `db:"application"`
	Severity      sql.NullString `db:"severity"`
	ResolverGroup sql.NullString `db:"resolver_group"`
	ClosureCode   sql.NullString `db:"closure_code"`
	Component     sql.NullString `db:"component"`
	OpenedAt      sql.NullTime   `db:"opened_at"`
	ResolvedAt    sql.NullTime   `db:"resolved_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     sql.NullTime   `db:"updated_at"`
}

func (db *dbIncident) ToDTO() dto.IncidentDTO {
	return dto.IncidentDTO{
		ID:            db.ID,
		Code:          db.Code,
		Description:   utils.NullStringToString(db.Description),
		Application:   utils.NullStringToString(db.Application),
		Severity:      utils.NullStringToString(db.Severity),
		ResolverGroup: utils.NullStringToString(db.ResolverGroup),
		ClosureCode:   utils.NullStringToString(db.ClosureCode),
		Component:     utils.NullStringToString(db.Component),
		OpenedAt:      utils.NullTimeToEmptyString(db.OpenedAt),
		ResolvedAt:    utils.NullTimeToEmptyString(db.ResolvedAt),
		CreatedAt:     db.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

var incidentDisplayColumns = []string{
	"i.id",
	"i.code",
	"i.description",
	"a.name AS application",
	"sev.name AS severity",
	"rg.name AS resolver_group",
	"cc.code AS closure_code",
	"comp.name AS component",
	"i.opened_at",
	"i.resolved_at",
	"i.created_at",
	"i.updated_at",
}

type IncidentRepositoryInterface interface {
	GetIncidents(ctx context.Context, filter types.ListFilter) ([]dto.IncidentDTO, uint64, error)
	FindIncident(ctx context.Context, id uint64) (*dto.IncidentDTO, error)
	CreateIncident(ctx context.Context, payload dto.CreateIncidentDTO) (*dto.IncidentDTO, error)
	UpdateIncident(ctx context.Context, id uint64, payload dto.UpdateIncidentDTO) (*dto.IncidentDTO, error)
	DeleteIncident(ctx context.Context, id uint64) error
}

type incidentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewIncidentRepository(storage *pgxpool.Pool, logger *zap.Logger) IncidentRepositoryInterface {
	return &incidentRepository{storage: storage, logger: logger}
}

// displayIncidents extends the filter base with the lookup joins the grid
// columns need. The aggregation queries never pay for these joins.
func displayIncidents() sq.SelectBuilder {
	return filteredIncidents(incidentDisplayColumns...).
		LeftJoin("applications a ON i.application_id = a.id").
		LeftJoin("closure_codes cc ON i.closure_code_id = cc.id").
		LeftJoin("components comp ON i.component_id = comp.id")
}

func (r *incidentRepository) GetIncidents(ctx context.Context, filter types.ListFilter) ([]dto.IncidentDTO, uint64, error) {
	preds := incidentPredicates(filter.IncidentFilter)
	if filter.CodeSearch != "" {
		preds = append(preds, sq.ILike{"i.code": "%" + filter.CodeSearch + "%"})
	}

	countQuery, countArgs, err := applyPredicates(filteredIncidents("COUNT(*)"), preds).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.IncidentDTO{}, 0, nil
	}

	query, args, err := applyPredicates(displayIncidents(), preds).
		OrderBy("i.opened_at DESC NULLS LAST", "i.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[dbIncident])
	if err != nil {
		return nil, 0, err
	}

	incidents := make([]dto.IncidentDTO, 0, len(dbRows))
	for i := range dbRows {
		incidents = append(incidents, dbRows[i].ToDTO())
	}
	return incidents, total, nil
}

func (r *incidentRepository) FindIncident(ctx context.Context, id uint64) (*dto.IncidentDTO, error) {
	query, args, err := displayIncidents().
		Where(sq.Eq{"i.id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	dbRow, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[dbIncident])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIncidentNotFound
		}
		return nil, err
	}

	incidentDTO := dbRow.ToDTO()
	return &incidentDTO, nil
}

func (r *incidentRepository) CreateIncident(ctx context.Context, payload dto.CreateIncidentDTO) (*dto.IncidentDTO, error) {
	query := `INSERT INTO incidents
		(code, description, application_id, severity_id, resolver_group_id, closure_code_id, component_id, opened_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		payload.Code,
		payload.Description,
		payload.ApplicationID.Ptr(),
		payload.SeverityID.Ptr(),
		payload.ResolverGroupID.Ptr(),
		payload.ClosureCodeID.Ptr(),
		payload.ComponentID.Ptr(),
		payload.OpenedAt.Ptr(),
		payload.ResolvedAt.Ptr(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, apperrors.ErrConflict
			case "23503":
				return nil, apperrors.ErrBadRequest
			}
		}
		return nil, err
	}
	return r.FindIncident(ctx, id)
}

func (r *incidentRepository) UpdateIncident(ctx context.Context, id uint64, payload dto.UpdateIncidentDTO) (*dto.IncidentDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}
	if payload.Description.Valid {
		set("description", payload.Description.String)
	}
	if payload.ApplicationID.Valid {
		set("application_id", payload.ApplicationID.Uint64)
	}
	if payload.SeverityID.Valid {
		set("severity_id", payload.SeverityID.Uint64)
	}
	if payload.ResolverGroupID.Valid {
		set("resolver_group_id", payload.ResolverGroupID.Uint64)
	}
	if payload.ClosureCodeID.Valid {
		set("closure_code_id", payload.ClosureCodeID.Uint64)
	}
	if payload.ComponentID.Valid {
		set("component_id", payload.ComponentID.Uint64)
	}
	if payload.OpenedAt.Valid {
		set("opened_at", payload.OpenedAt.Time)
	}
	if payload.ResolvedAt.Valid {
		set("resolved_at", payload.ResolvedAt.Time)
	}
	if len(setClauses) == 0 {
		return r.FindIncident(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE incidents SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, apperrors.ErrConflict
			case "23503":
				return nil, apperrors.ErrBadRequest
			}
		}
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrIncidentNotFound
	}
	return r.FindIncident(ctx, id)
}

func (r *incidentRepository) DeleteIncident(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM incidents WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrIncidentNotFound
	}
	return nil
}
