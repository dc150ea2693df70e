package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/everyclass_server/internal/clock"
	"github.com/Freeeeeet/everyclass_server/internal/model"
	"go.uber.org/zap"
)

type VisitService struct {
	repo   VisitStore
	clock  clock.Clock
	logger *zap.Logger
}

func NewVisitService(repo VisitStore, clk clock.Clock, logger *zap.Logger) *VisitService {
	return &VisitService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

// Record оставляет след визита viewer на странице host.
// Свои визиты не учитываются; анонимы попадают только в счётчик.
func (s *VisitService) Record(ctx context.Context, hostID string, viewer model.Viewer) error {
	if viewer.UserID == hostID {
		return nil
	}

	if viewer.IsLoggedIn() {
		if err := s.repo.UpsertTrack(ctx, hostID, viewer.UserID, s.clock.Now()); err != nil {
			return fmt.Errorf("record visit track: %w", err)
		}
	}

	key := viewer.VisitorKey()
	if key == "" {
		return nil
	}

	if err := s.repo.AddVisitor(ctx, hostID, key); err != nil {
		return fmt.Errorf("record visitor count: %w", err)
	}

	s.logger.Debug("Visit recorded",
		zap.String("host_id", hostID),
		zap.String("visitor_key", key),
	)

	return nil
}

// Visitors получает список посетителей, последние сверху
func (s *VisitService) Visitors(ctx context.Context, hostID string) ([]*model.VisitTrack, error) {
	tracks, err := s.repo.ListTracks(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("get visitors: %w", err)
	}

	return tracks, nil
}

// VisitorCount получает количество уникальных посетителей
func (s *VisitService) VisitorCount(ctx context.Context, hostID string) (int64, error) {
	count, err := s.repo.CountVisitors(ctx, hostID)
	if err != nil {
		return 0, fmt.Errorf("get visitor count: %w", err)
	}

	return count, nil
}
