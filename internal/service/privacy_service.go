package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"go.uber.org/zap"
)

type PrivacyService struct {
	repo   PrivacyStore
	logger *zap.Logger
}

func NewPrivacyService(repo PrivacyStore, logger *zap.Logger) *PrivacyService {
	return &PrivacyService{
		repo:   repo,
		logger: logger,
	}
}

// GetLevel получает уровень приватности; без записи расписание открыто всем
func (s *PrivacyService) GetLevel(ctx context.Context, userID string) (model.PrivacyLevel, error) {
	level, err := s.repo.GetLevel(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get privacy level: %w", err)
	}

	if level == nil {
		return model.PrivacyPublic, nil
	}

	return *level, nil
}

// SetLevel перезаписывает уровень приватности пользователя
func (s *PrivacyService) SetLevel(ctx context.Context, userID string, level model.PrivacyLevel) error {
	if !level.IsValid() {
		return ErrInvalidPrivacyLevel
	}

	if err := s.repo.SetLevel(ctx, userID, level); err != nil {
		return fmt.Errorf("set privacy level: %w", err)
	}

	s.logger.Info("Privacy level changed",
		zap.String("user_id", userID),
		zap.Stringer("level", level),
	)

	return nil
}
