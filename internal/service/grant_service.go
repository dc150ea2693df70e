package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/Freeeeeet/everyclass_server/internal/repository"
	"go.uber.org/zap"
)

// GrantService ведёт журнал разрешений на просмотр расписания.
// Grantor владелец расписания, grantee тот, кто хочет его смотреть.
type GrantService struct {
	repo   GrantStore
	logger *zap.Logger
}

func NewGrantService(repo GrantStore, logger *zap.Logger) *GrantService {
	return &GrantService{
		repo:   repo,
		logger: logger,
	}
}

// RequestGrant создаёт заявку: fromUser хочет смотреть расписание toUser
func (s *GrantService) RequestGrant(ctx context.Context, fromUser, toUser string) (*model.Grant, error) {
	if fromUser == toUser {
		return nil, ErrSelfGrant
	}

	// Проверяем, нет ли уже доступа
	granted, err := s.repo.HasStatus(ctx, toUser, fromUser, model.GrantStatusValid)
	if err != nil {
		return nil, fmt.Errorf("check valid grant: %w", err)
	}
	if granted {
		return nil, ErrAlreadyGranted
	}

	// Проверяем, нет ли pending заявки
	pending, err := s.repo.HasStatus(ctx, toUser, fromUser, model.GrantStatusPending)
	if err != nil {
		return nil, fmt.Errorf("check pending grant: %w", err)
	}
	if pending {
		return nil, ErrHasPendingRequest
	}

	grant := &model.Grant{
		GrantType: model.GrantTypeViewing,
		Status:    model.GrantStatusPending,
		GrantorID: toUser,
		GranteeID: fromUser,
	}

	// Уникальный индекс ловит параллельную заявку, проскочившую проверку выше
	if err := s.repo.Create(ctx, grant); err != nil {
		if errors.Is(err, repository.ErrDuplicatePending) {
			return nil, ErrHasPendingRequest
		}
		return nil, fmt.Errorf("create grant: %w", err)
	}

	s.logger.Info("Grant requested",
		zap.Int64("record_id", grant.RecordID),
		zap.String("grantor_id", grant.GrantorID),
		zap.String("grantee_id", grant.GranteeID),
	)

	return grant, nil
}

// Accept одобряет заявку (только владелец расписания)
func (s *GrantService) Accept(ctx context.Context, grantID int64, actingUser string) error {
	return s.answer(ctx, grantID, actingUser, model.GrantStatusPending, model.GrantStatusValid)
}

// Reject отклоняет заявку (только владелец расписания)
func (s *GrantService) Reject(ctx context.Context, grantID int64, actingUser string) error {
	return s.answer(ctx, grantID, actingUser, model.GrantStatusPending, model.GrantStatusRejected)
}

// Revoke отзывает действующее разрешение (только владелец расписания)
func (s *GrantService) Revoke(ctx context.Context, grantID int64, actingUser string) error {
	return s.answer(ctx, grantID, actingUser, model.GrantStatusValid, model.GrantStatusRevoked)
}

func (s *GrantService) answer(ctx context.Context, grantID int64, actingUser string, from, to model.GrantStatus) error {
	grant, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		return fmt.Errorf("get grant: %w", err)
	}

	if grant == nil {
		return ErrGrantNotFound
	}

	// Проверяем, что заявка адресована этому пользователю
	if grant.GrantorID != actingUser {
		return ErrNoPermissionToAccept
	}

	if grant.Status != from {
		return statusError(from)
	}

	// Статус мог смениться между чтением и записью
	updated, err := s.repo.UpdateStatus(ctx, grantID, from, to)
	if err != nil {
		return fmt.Errorf("update grant status: %w", err)
	}
	if !updated {
		return statusError(from)
	}

	s.logger.Info("Grant status changed",
		zap.Int64("record_id", grantID),
		zap.String("grantor_id", grant.GrantorID),
		zap.String("grantee_id", grant.GranteeID),
		zap.String("status", string(to)),
	)

	return nil
}

func statusError(expected model.GrantStatus) error {
	if expected == model.GrantStatusValid {
		return ErrGrantNotValid
	}
	return ErrGrantNotPending
}

// HasGrant проверяет, что viewer может смотреть расписание owner по разрешению
func (s *GrantService) HasGrant(ctx context.Context, viewer, owner string) (bool, error) {
	granted, err := s.repo.HasStatus(ctx, owner, viewer, model.GrantStatusValid)
	if err != nil {
		return false, fmt.Errorf("check grant: %w", err)
	}

	return granted, nil
}

// ListPendingFor получает заявки, ожидающие ответа user
func (s *GrantService) ListPendingFor(ctx context.Context, user string) ([]*model.Grant, error) {
	grants, err := s.repo.ListByGrantor(ctx, user, model.GrantStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending grants: %w", err)
	}

	return grants, nil
}

// ListGranted получает действующие разрешения, выданные viewer
func (s *GrantService) ListGranted(ctx context.Context, viewer string) ([]*model.Grant, error) {
	grants, err := s.repo.ListByGrantee(ctx, viewer, model.GrantStatusValid)
	if err != nil {
		return nil, fmt.Errorf("list granted: %w", err)
	}

	return grants, nil
}
