package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"go.uber.org/zap"
)

// AccessService решает, может ли пользователь смотреть чужое расписание
type AccessService struct {
	privacy *PrivacyService
	grants  *GrantService
	visits  *VisitService
	logger  *zap.Logger
}

func NewAccessService(privacy *PrivacyService, grants *GrantService, visits *VisitService, logger *zap.Logger) *AccessService {
	return &AccessService{
		privacy: privacy,
		grants:  grants,
		visits:  visits,
		logger:  logger,
	}
}

func allow() model.Decision {
	return model.Decision{Allowed: true}
}

func (s *AccessService) deny(ownerID string, viewer model.Viewer, reason model.DenyReason) model.Decision {
	s.logger.Debug("Access denied",
		zap.String("owner_id", ownerID),
		zap.String("viewer_id", viewer.UserID),
		zap.String("reason", string(reason)),
	)
	return model.Decision{Allowed: false, Reason: reason}
}

// CheckAccess проверяет, может ли viewer смотреть расписание ownerID.
// При recordVisit успешный просмотр чужого расписания оставляет след.
// Отказ не является ошибкой: error возвращается только при сбое хранилища.
func (s *AccessService) CheckAccess(ctx context.Context, ownerID string, viewer model.Viewer, recordVisit bool) (model.Decision, error) {
	// Явное разрешение важнее уровня приватности
	if viewer.IsLoggedIn() {
		granted, err := s.grants.HasGrant(ctx, viewer.UserID, ownerID)
		if err != nil {
			return model.Decision{}, fmt.Errorf("check grant: %w", err)
		}
		if granted {
			return allow(), nil
		}
	}

	ownerLevel, err := s.privacy.GetLevel(ctx, ownerID)
	if err != nil {
		return model.Decision{}, fmt.Errorf("get owner privacy level: %w", err)
	}

	switch ownerLevel {
	case model.PrivacySelfOnly:
		if viewer.UserID == ownerID {
			return allow(), nil
		}
		return s.deny(ownerID, viewer, model.DenySelfOnly), nil

	case model.PrivacyMutual:
		if !viewer.IsLoggedIn() {
			return s.deny(ownerID, viewer, model.DenyRequireLogin), nil
		}

		viewerLevel, err := s.privacy.GetLevel(ctx, viewer.UserID)
		if err != nil {
			return model.Decision{}, fmt.Errorf("get viewer privacy level: %w", err)
		}
		if viewerLevel == model.PrivacySelfOnly {
			return s.deny(ownerID, viewer, model.DenyRequirePermissionAdjust), nil
		}
	}

	if recordVisit {
		if err := s.visits.Record(ctx, ownerID, viewer); err != nil {
			return model.Decision{}, fmt.Errorf("record visit: %w", err)
		}
	}

	return allow(), nil
}
