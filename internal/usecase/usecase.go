package usecase

import (
	"pr-review-status/internal/repository"
	"pr-review-status/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	ClassificationUsecaseInterface
	ReportUsecaseInterface
	StatusUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	platform repository.Platform,
	history repository.StatusHistoryInterface,
	settings domain.Settings,
) InterfaceUsecase {
	return domain.New(log, platform, history, settings)
}
