package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/Freeeeeet/everyclass_server/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tokenColumns = `token, type, identifier, semester, create_time, last_used_time`

type CalendarTokenRepository struct {
	*base.Repository
}

func NewCalendarTokenRepository(pool *pgxpool.Pool) *CalendarTokenRepository {
	return &CalendarTokenRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет токен. Возвращает false, если для (type, identifier, semester)
// токен уже существует
func (r *CalendarTokenRepository) Create(ctx context.Context, token *model.CalendarToken) (bool, error) {
	query := `
		INSERT INTO calendar_tokens (token, type, identifier, semester, create_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (type, identifier, semester) DO NOTHING
	`

	affected, err := r.ExecAffected(
		ctx, query,
		token.Token,
		token.Kind,
		token.Identifier,
		token.Semester,
		token.CreateTime,
	)
	if err != nil {
		return false, fmt.Errorf("create calendar token: %w", err)
	}

	return affected > 0, nil
}

// FindByResource получает токен по (type, identifier, semester)
func (r *CalendarTokenRepository) FindByResource(ctx context.Context, kind model.ResourceKind, identifier, semester string) (*model.CalendarToken, error) {
	query := `
		SELECT ` + tokenColumns + `
		FROM calendar_tokens
		WHERE type = $1 AND identifier = $2 AND semester = $3
	`

	token, err := scanToken(r.QueryRow(ctx, query, kind, identifier, semester))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find calendar token by resource: %w", err)
	}

	return token, nil
}

// FindByToken получает токен по его значению
func (r *CalendarTokenRepository) FindByToken(ctx context.Context, token uuid.UUID) (*model.CalendarToken, error) {
	query := `SELECT ` + tokenColumns + ` FROM calendar_tokens WHERE token = $1`

	found, err := scanToken(r.QueryRow(ctx, query, token))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find calendar token: %w", err)
	}

	return found, nil
}

// Touch обновляет время последнего использования
func (r *CalendarTokenRepository) Touch(ctx context.Context, token uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE calendar_tokens
		SET last_used_time = $1
		WHERE token = $2
	`

	affected, err := r.ExecAffected(ctx, query, at, token)
	if err != nil {
		return false, fmt.Errorf("touch calendar token: %w", err)
	}

	return affected > 0, nil
}

// DeleteByIdentifier удаляет все токены пользователя
func (r *CalendarTokenRepository) DeleteByIdentifier(ctx context.Context, identifier string, kind model.ResourceKind) (int64, error) {
	query := `
		DELETE FROM calendar_tokens
		WHERE identifier = $1 AND type = $2
	`

	affected, err := r.ExecAffected(ctx, query, identifier, kind)
	if err != nil {
		return 0, fmt.Errorf("delete calendar tokens: %w", err)
	}

	return affected, nil
}

func scanToken(row pgx.Row) (*model.CalendarToken, error) {
	var token model.CalendarToken
	err := row.Scan(
		&token.Token,
		&token.Kind,
		&token.Identifier,
		&token.Semester,
		&token.CreateTime,
		&token.LastUsedTime,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
