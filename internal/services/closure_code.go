package services

import (
	"context"

	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/repositories"
)

// recentCodes is how many entries the recent-codes endpoint returns.
const recentCodes = 5

type ClosureCodeServiceInterface interface {
	GetClosureCodes(ctx context.Context, applicationID uint64, codeSearch string, limit, offset uint64) ([]dto.ClosureCodeDTO, uint64, error)
	FindClosureCode(ctx context.Context, id uint64) (*dto.ClosureCodeDTO, error)
	CreateClosureCode(ctx context.Context, payload dto.CreateClosureCodeDTO) (*dto.ClosureCodeDTO, error)
	UpdateClosureCode(ctx context.Context, id uint64, payload dto.UpdateClosureCodeDTO) (*dto.ClosureCodeDTO, error)
	DeleteClosureCode(ctx context.Context, id uint64) error
	Lookup(ctx context.Context, applicationID *uint64) (*dto.ClosureCodeLookupDTO, error)
	Recent(ctx context.Context, applicationID uint64) ([]dto.ClosureCodeDTO, error)
}

type ClosureCodeService struct {
	closureCodeRepo repositories.ClosureCodeRepositoryInterface
	logger          *zap.Logger
}

func NewClosureCodeService(closureCodeRepo repositories.ClosureCodeRepositoryInterface, logger *zap.Logger) ClosureCodeServiceInterface {
	return &ClosureCodeService{closureCodeRepo: closureCodeRepo, logger: logger}
}

func (s *ClosureCodeService) GetClosureCodes(ctx context.Context, applicationID uint64, codeSearch string, limit, offset uint64) ([]dto.ClosureCodeDTO, uint64, error) {
	return s.closureCodeRepo.GetClosureCodes(ctx, applicationID, codeSearch, limit, offset)
}

func (s *ClosureCodeService) FindClosureCode(ctx context.Context, id uint64) (*dto.ClosureCodeDTO, error) {
	return s.closureCodeRepo.FindClosureCode(ctx, id)
}

func (s *ClosureCodeService) CreateClosureCode(ctx context.Context, payload dto.CreateClosureCodeDTO) (*dto.ClosureCodeDTO, error) {
	return s.closureCodeRepo.CreateClosureCode(ctx, payload)
}

func (s *ClosureCodeService) UpdateClosureCode(ctx context.Context, id uint64, payload dto.UpdateClosureCodeDTO) (*dto.ClosureCodeDTO, error) {
	return s.closureCodeRepo.UpdateClosureCode(ctx, id, payload)
}

func (s *ClosureCodeService) DeleteClosureCode(ctx context.Context, id uint64) error {
	return s.closureCodeRepo.DeleteClosureCode(ctx, id)
}

// Lookup returns the dependent selector payload. The list is never nil even
// when nothing matched, so the client always receives {"codigos": []}.
func (s *ClosureCodeService) Lookup(ctx context.Context, applicationID *uint64) (*dto.ClosureCodeLookupDTO, error) {
	options, err := s.closureCodeRepo.ObservedByApplication(ctx, applicationID)
	if err != nil {
		s.logger.Error("closure code lookup failed", zap.Error(err))
		return nil, err
	}
	return &dto.ClosureCodeLookupDTO{Codigos: options}, nil
}

func (s *ClosureCodeService) Recent(ctx context.Context, applicationID uint64) ([]dto.ClosureCodeDTO, error) {
	return s.closureCodeRepo.Recent(ctx, applicationID, recentCodes)
}
