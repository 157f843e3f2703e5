package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cmdb-system/internal/dto"
	apperrors "cmdb-system/pkg/errors"
	"cmdb-system/pkg/utils"
)

type dbApplication struct {
	ID          uint64
	Code        string
	Name        string
	Criticality sql.NullString
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime
}

func (db *dbApplication) ToDTO() dto.ApplicationDTO {
	return dto.ApplicationDTO{
		ID:          db.ID,
		Code:        db.Code,
		Name:        db.Name,
		Criticality: utils.NullStringToString(db.Criticality),
		CreatedAt:   db.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   utils.NullTimeToEmptyString(db.UpdatedAt),
	}
}

const (
	applicationTable  = "applications"
	applicationFields = "id, code, name, criticality, created_at, updated_at"
)

type ApplicationFilter struct {
	Name        string
	Code        string
	Criticality string
	Limit       uint64
	Offset      uint64
}

type ApplicationRepositoryInterface interface {
	GetApplications(ctx context.Context, filter ApplicationFilter) ([]dto.ApplicationDTO, uint64, error)
	FindApplication(ctx context.Context, id uint64) (*dto.ApplicationDTO, error)
	CreateApplication(ctx context.Context, payload dto.CreateApplicationDTO) (*dto.ApplicationDTO, error)
	UpdateApplication(ctx context.Context, id uint64, payload dto.UpdateApplicationDTO) (*dto.ApplicationDTO, error)
	DeleteApplication(ctx context.Context, id uint64) error
	ListShort(ctx context.Context) ([]dto.ShortApplicationDTO, error)
}

type applicationRepository struct{ storage *pgxpool.Pool }

func NewApplicationRepository(storage *pgxpool.Pool) ApplicationRepositoryInterface {
	return &applicationRepository{storage: storage}
}

func (r *applicationRepository) GetApplications(ctx context.Context, filter ApplicationFilter) ([]dto.ApplicationDTO, uint64, error) {
	var clauses []string
	var args []interface{}

	addClause := func(clause, value string) {
		args = append(args, "%"+value+"%")
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if filter.Name != "" {
		addClause("name ILIKE $%d", filter.Name)
	}
	if filter.Code != "" {
		addClause("code ILIKE $%d", filter.Code)
	}
	if filter.Criticality != "" {
		args = append(args, filter.Criticality)
		clauses = append(clauses, fmt.Sprintf("criticality = $%d", len(args)))
	}

	whereClause := ""
	if len(clauses) > 0 {
		whereClause = "WHERE " + strings.Join(clauses, " AND ")
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", applicationTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.ApplicationDTO{}, 0, nil
	}

	queryArgs := append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY name LIMIT $%d OFFSET $%d",
		applicationFields, applicationTable, whereClause, len(args)+1, len(args)+2)

	rows, err := r.storage.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	apps := make([]dto.ApplicationDTO, 0)
	for rows.Next() {
		var dbRow dbApplication
		if err := rows.Scan(&dbRow.ID, &dbRow.Code, &dbRow.Name, &dbRow.Criticality, &dbRow.CreatedAt, &dbRow.UpdatedAt); err != nil {
			return nil, 0, err
		}
		apps = append(apps, dbRow.ToDTO())
	}
	return apps, total, rows.Err()
}

func (r *applicationRepository) FindApplication(ctx context.Context, id uint64) (*dto.ApplicationDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", applicationFields, applicationTable)
	var dbRow dbApplication
	err := r.storage.QueryRow(ctx, query, id).Scan(&dbRow.ID, &dbRow.Code, &dbRow.Name, &dbRow.Criticality, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, err
	}
	appDTO := dbRow.ToDTO()
	return &appDTO, nil
}

func (r *applicationRepository) CreateApplication(ctx context.Context, payload dto.CreateApplicationDTO) (*dto.ApplicationDTO, error) {
	query := fmt.Sprintf("INSERT INTO %s (code, name, criticality) VALUES ($1, $2, NULLIF($3, '')) RETURNING %s",
		applicationTable, applicationFields)
	var dbRow dbApplication
	err := r.storage.QueryRow(ctx, query, payload.Code, payload.Name, payload.Criticality).
		Scan(&dbRow.ID, &dbRow.Code, &dbRow.Name, &dbRow.Criticality, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	appDTO := dbRow.ToDTO()
	return &appDTO, nil
}

func (r *applicationRepository) UpdateApplication(ctx context.Context, id uint64, payload dto.UpdateApplicationDTO) (*dto.ApplicationDTO, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}
	if payload.Code != nil {
		set("code", *payload.Code)
	}
	if payload.Name != nil {
		set("name", *payload.Name)
	}
	if payload.Criticality != nil {
		set("criticality", *payload.Criticality)
	}
	if len(setClauses) == 0 {
		return r.FindApplication(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		applicationTable, strings.Join(setClauses, ", "), argID, applicationFields)
	args = append(args, id)

	var dbRow dbApplication
	err := r.storage.QueryRow(ctx, query, args...).
		Scan(&dbRow.ID, &dbRow.Code, &dbRow.Name, &dbRow.Criticality, &dbRow.CreatedAt, &dbRow.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	appDTO := dbRow.ToDTO()
	return &appDTO, nil
}

func (r *applicationRepository) DeleteApplication(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", applicationTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrApplicationInUse
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) ListShort(ctx context.Context) ([]dto.ShortApplicationDTO, error) {
	rows, err := r.storage.Query(ctx, "SELECT id, name FROM applications ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]dto.ShortApplicationDTO, 0)
	for rows.Next() {
		var app dto.ShortApplicationDTO
		if err := rows.Scan(&app.ID, &app.Name); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
