package services

import (
	"context"

	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/repositories"
	"cmdb-system/pkg/types"
)

type IncidentServiceInterface interface {
	GetIncidents(ctx context.Context, filter types.ListFilter) ([]dto.IncidentDTO, uint64, error)
	FindIncident(ctx context.Context, id uint64) (*dto.IncidentDTO, error)
	CreateIncident(ctx context.Context, payload dto.CreateIncidentDTO) (*dto.IncidentDTO, error)
	UpdateIncident(ctx context.Context, id uint64, payload dto.UpdateIncidentDTO) (*dto.IncidentDTO, error)
	DeleteIncident(ctx context.Context, id uint64) error
}

type IncidentService struct {
	incidentRepo repositories.IncidentRepositoryInterface
	logger       *zap.Logger
}

func NewIncidentService(incidentRepo repositories.IncidentRepositoryInterface, logger *zap.Logger) IncidentServiceInterface {
	return &IncidentService{incidentRepo: incidentRepo, logger: logger}
}

func (s *IncidentService) GetIncidents(ctx context.Context, filter types.ListFilter) ([]dto.IncidentDTO, uint64, error) {
	return s.incidentRepo.GetIncidents(ctx, filter)
}

func (s *IncidentService) FindIncident(ctx context.Context, id uint64) (*dto.IncidentDTO, error) {
	return s.incidentRepo.FindIncident(ctx, id)
}

func (s *IncidentService) CreateIncident(ctx context.Context, payload dto.CreateIncidentDTO) (*dto.IncidentDTO, error) {
	return s.incidentRepo.CreateIncident(ctx, payload)
}

func (s *IncidentService) UpdateIncident(ctx context.Context, id uint64, payload dto.UpdateIncidentDTO) (*dto.IncidentDTO, error) {
	return s.incidentRepo.UpdateIncident(ctx, id, payload)
}

func (s *IncidentService) DeleteIncident(ctx context.Context, id uint64) error {
	return s.incidentRepo.DeleteIncident(ctx, id)
}
