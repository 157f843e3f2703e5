package services

import (
	"context"

	"cmdb-system/internal/entities"
	"cmdb-system/internal/repositories"
)

type CatalogServiceInterface interface {
	GetSeverities(ctx context.Context) ([]entities.Severity, error)
	GetResolverGroups(ctx context.Context) ([]entities.ResolverGroup, error)
	GetComponents(ctx context.Context, applicationID uint64) ([]entities.Component, error)
}

type CatalogService struct {
	catalogRepo repositories.CatalogRepositoryInterface
}

func NewCatalogService(catalogRepo repositories.CatalogRepositoryInterface) CatalogServiceInterface {
	return &CatalogService{catalogRepo: catalogRepo}
}

func (s *CatalogService) GetSeverities(ctx context.Context) ([]entities.Severity, error) {
	return s.catalogRepo.GetSeverities(ctx)
}

func (s *CatalogService) GetResolverGroups(ctx context.Context) ([]entities.ResolverGroup, error) {
	return s.catalogRepo.GetResolverGroups(ctx)
}

func (s *CatalogService) GetComponents(ctx context.Context, applicationID uint64) ([]entities.Component, error) {
	return s.catalogRepo.GetComponents(ctx, applicationID)
}
