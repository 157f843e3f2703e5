package services

import (
	"context"

	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/repositories"
)

type ApplicationServiceInterface interface {
	GetApplications(ctx context.Context, filter repositories.ApplicationFilter) ([]dto.ApplicationDTO, uint64, error)
	FindApplication(ctx context.Context, id uint64) (*dto.ApplicationDTO, error)
	CreateApplication(ctx context.Context, payload dto.CreateApplicationDTO) (*dto.ApplicationDTO, error)
	UpdateApplication(ctx context.Context, id uint64, payload dto.UpdateApplicationDTO) (*dto.ApplicationDTO, error)
	DeleteApplication(ctx context.Context, id uint64) error
	ListShort(ctx context.Context) ([]dto.ShortApplicationDTO, error)
}

type ApplicationService struct {
	applicationRepo repositories.ApplicationRepositoryInterface
	logger          *zap.Logger
}

func NewApplicationService(applicationRepo repositories.ApplicationRepositoryInterface, logger *zap.Logger) ApplicationServiceInterface {
	return &ApplicationService{applicationRepo: applicationRepo, logger: logger}
}

func (s *ApplicationService) GetApplications(ctx context.Context, filter repositories.ApplicationFilter) ([]dto.ApplicationDTO, uint64, error) {
	return s.applicationRepo.GetApplications(ctx, filter)
}

func (s *ApplicationService) FindApplication(ctx context.Context, id uint64) (*dto.ApplicationDTO, error) {
	return s.applicationRepo.FindApplication(ctx, id)
}

func (s *ApplicationService) CreateApplication(ctx context.Context, payload dto.CreateApplicationDTO) (*dto.ApplicationDTO, error) {
	return s.applicationRepo.CreateApplication(ctx, payload)
}

func (s *ApplicationService) UpdateApplication(ctx context.Context, id uint64, payload dto.UpdateApplicationDTO) (*dto.ApplicationDTO, error) {
	return s.applicationRepo.UpdateApplication(ctx, id, payload)
}

func (s *ApplicationService) DeleteApplication(ctx context.Context, id uint64) error {
	return s.applicationRepo.DeleteApplication(ctx, id)
}

func (s *ApplicationService) ListShort(ctx context.Context) ([]dto.ShortApplicationDTO, error) {
	return s.applicationRepo.ListShort(ctx)
}
