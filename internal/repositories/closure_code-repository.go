package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cmdb-system/internal/dto"
	apperrors "cmdb-system/pkg/errors"
)

type dbClosureCode struct {
	ID            uint64    `db:"id"`
	ApplicationID uint64    `db:"application_id"`
	Code          string    `db:"code"`
	Description   string    `db:"description"`
	CreatedAt     time.Time `db:"created_at"`
}

func (db *dbClosureCode) ToDTO() dto.ClosureCodeDTO {
	return dto.ClosureCodeDTO{
		ID:            db.ID,
		ApplicationID: db.ApplicationID,
		Code:          db.Code,
		Description:   db.Description,
		CreatedAt:     db.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

const (
	closureCodeTable  = "closure_codes"
	closureCodeFields = "id, application_id, code, description, created_at"
)

type ClosureCodeRepositoryInterface interface {
	GetClosureCodes(ctx context.Context, applicationID uint64, codeSearch string, limit, offset uint64) ([]dto.ClosureCodeDTO, uint64, error)
	FindClosureCode(ctx context.Context, id uint64) (*dto.ClosureCodeDTO, error)
	CreateClosureCode(ctx context.Context, payload dto.CreateClosureCodeDTO) (*dto.ClosureCodeDTO, error)
	UpdateClosureCode(ctx context.Context, id uint64, payload dto.UpdateClosureCodeDTO) (*dto.ClosureCodeDTO, error)
	DeleteClosureCode(ctx context.Context, id uint64) error
	ObservedByApplication(ctx context.Context, applicationID *uint64) ([]dto.ClosureCodeOptionDTO, error)
	Recent(ctx context.Context, applicationID uint64, limit uint64) ([]dto.ClosureCodeDTO, error)
	CorpusByApplication(ctx context.Context, applicationID uint64) ([]dto.ClosureCodeDTO, error)
}

type closureCodeRepository struct{ storage *pgxpool.Pool }

func NewClosureCodeRepository(storage *pgxpool.Pool) ClosureCodeRepositoryInterface {
	return &closureCodeRepository{storage: storage}
}

func (r *closureCodeRepository) GetClosureCodes(ctx context.Context, applicationID uint64, codeSearch string, limit, offset uint64) ([]dto.ClosureCodeDTO, uint64, error) {
	builder := sq.Select().From(closureCodeTable)
	if applicationID != 0 {
		builder = builder.Where(sq.Eq{"application_id": applicationID})
	}
	if codeSearch != "" {
		builder = builder.Where(sq.ILike{"code": "%" + codeSearch + "%"})
	}

	countQuery, countArgs, err := builder.Columns("COUNT(*)").PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []dto.ClosureCodeDTO{}, 0, nil
	}

	query, args, err := builder.
		Columns("id", "application_id", "code", "description", "created_at").
		OrderBy("code ASC", "id ASC").
		Limit(limit).
		Offset(offset).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[dbClosureCode])
	if err != nil {
		return nil, 0, err
	}

	codes := make([]dto.ClosureCodeDTO, 0, len(dbRows))
	for i := range dbRows {
		codes = append(codes, dbRows[i].ToDTO())
	}
	return codes, total, nil
}

func (r *closureCodeRepository) FindClosureCode(ctx context.Context, id uint64) (*dto.ClosureCodeDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", closureCodeFields, closureCodeTable)
	rows, err := r.storage.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	dbRow, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[dbClosureCode])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClosureCodeNotFound
		}
		return nil, err
	}
	codeDTO := dbRow.ToDTO()
	return &codeDTO, nil
}

func (r *closureCodeRepository) CreateClosureCode(ctx context.Context, payload dto.CreateClosureCodeDTO) (*dto.ClosureCodeDTO, error) {
	query := fmt.Sprintf("INSERT INTO %s (application_id, code, description) VALUES ($1, $2, $3) RETURNING %s",
		closureCodeTable, closureCodeFields)
	rows, err := r.storage.Query(ctx, query, payload.ApplicationID, payload.Code, payload.Description)
	if err != nil {
		return nil, err
	}
	dbRow, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[dbClosureCode])
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, apperrors.ErrConflict
			case "23503":
				return nil, apperrors.ErrApplicationNotFound
			}
		}
		return nil, err
	}
	codeDTO := dbRow.ToDTO()
	return &codeDTO, nil
}

func (r *closureCodeRepository) UpdateClosureCode(ctx context.Context, id uint64, payload dto.UpdateClosureCodeDTO) (*dto.ClosureCodeDTO, error) {
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
	if payload.Description != nil {
		set("description", *payload.Description)
	}
	if len(setClauses) == 0 {
		return r.FindClosureCode(ctx, id)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		closureCodeTable, strings.Join(setClauses, ", "), argID, closureCodeFields)
	args = append(args, id)

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	dbRow, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[dbClosureCode])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClosureCodeNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	codeDTO := dbRow.ToDTO()
	return &codeDTO, nil
}

func (r *closureCodeRepository) DeleteClosureCode(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", closureCodeTable)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrClosureCodeInUse
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrClosureCodeNotFound
	}
	return nil
}

// ObservedByApplication returns the closure codes actually seen on incidents,
// which is what the dependent selector offers. A nil applicationID widens the
// lookup to every application.
func (r *closureCodeRepository) ObservedByApplication(ctx context.Context, applicationID *uint64) ([]dto.ClosureCodeOptionDTO, error) {
	builder := sq.Select("DISTINCT cc.id", "cc.code").
		From("incidents i").
		Join("closure_codes cc ON i.closure_code_id = cc.id").
		OrderBy("cc.code ASC")
	if applicationID != nil {
		builder = builder.Where(sq.Eq{"i.application_id": *applicationID})
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := make([]dto.ClosureCodeOptionDTO, 0)
	for rows.Next() {
		var option dto.ClosureCodeOptionDTO
		if err := rows.Scan(&option.ID, &option.Text); err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	return options, rows.Err()
}

// Recent returns the newest closure codes registered for an application.
func (r *closureCodeRepository) Recent(ctx context.Context, applicationID uint64, limit uint64) ([]dto.ClosureCodeDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE application_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2",
		closureCodeFields, closureCodeTable)
	rows, err := r.storage.Query(ctx, query, applicationID, limit)
	if err != nil {
		return nil, err
	}
	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[dbClosureCode])
	if err != nil {
		return nil, err
	}

	codes := make([]dto.ClosureCodeDTO, 0, len(dbRows))
	for i := range dbRows {
		codes = append(codes, dbRows[i].ToDTO())
	}
	return codes, nil
}

// CorpusByApplication returns every closure code of one application with its
// description intact. Feeds the suggestion scorer.
func (r *closureCodeRepository) CorpusByApplication(ctx context.Context, applicationID uint64) ([]dto.ClosureCodeDTO, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE application_id = $1 ORDER BY id", closureCodeFields, closureCodeTable)
	rows, err := r.storage.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[dbClosureCode])
	if err != nil {
		return nil, err
	}

	codes := make([]dto.ClosureCodeDTO, 0, len(dbRows))
	for i := range dbRows {
		codes = append(codes, dbRows[i].ToDTO())
	}
	return codes, nil
}
