package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cmdb-system/internal/entities"
)

type CatalogRepositoryInterface interface {
	GetSeverities(ctx context.Context) ([]entities.Severity, error)
	GetResolverGroups(ctx context.Context) ([]entities.ResolverGroup, error)
	GetComponents(ctx context.Context, applicationID uint64) ([]entities.Component, error)
}

type catalogRepository struct{ storage *pgxpool.Pool }

func NewCatalogRepository(storage *pgxpool.Pool) CatalogRepositoryInterface {
	return &catalogRepository{storage: storage}
}

func (r *catalogRepository) GetSeverities(ctx context.Context) ([]entities.Severity, error) {
	rows, err := r.storage.Query(ctx, "SELECT id, name, rank FROM severities ORDER BY rank")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[entities.Severity])
}

func (r *catalogRepository) GetResolverGroups(ctx context.Context) ([]entities.ResolverGroup, error) {
	rows, err := r.storage.Query(ctx, "SELECT id, name FROM resolver_groups ORDER BY name")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[entities.ResolverGroup])
}

func (r *catalogRepository) GetComponents(ctx context.Context, applicationID uint64) ([]entities.Component, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, application_id, name, kind FROM components WHERE application_id = $1 ORDER BY name", applicationID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[entities.Component])
}
