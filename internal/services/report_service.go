package services

import (
	"context"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/types"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	EquipmentRegister(ctx context.Context, q types.ListQuery) ([]entities.EquipmentRegisterItem, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo, logger: logger}
}

// EquipmentRegister - весь реестр без пагинации, в порядке списка оборудования.
func (s *reportService) EquipmentRegister(ctx context.Context, q types.ListQuery) ([]entities.EquipmentRegisterItem, error) {
	q.Limit, q.Offset = 0, 0
	items, err := s.reportRepo.EquipmentRegister(ctx, q)
	if err != nil {
		s.logger.Error("ошибка получения реестра оборудования", zap.Error(err))
		return nil, err
	}
	return items, nil
}
