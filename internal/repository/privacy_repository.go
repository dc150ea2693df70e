package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/Freeeeeet/everyclass_server/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PrivacyRepository struct {
	*base.Repository
}

func NewPrivacyRepository(pool *pgxpool.Pool) *PrivacyRepository {
	return &PrivacyRepository{Repository: base.NewRepository(pool)}
}

// GetLevel получает уровень приватности пользователя, nil если записи нет
func (r *PrivacyRepository) GetLevel(ctx context.Context, userID string) (*model.PrivacyLevel, error) {
	query := `
		SELECT level
		FROM privacy_settings
		WHERE student_id = $1
	`

	var level model.PrivacyLevel
	err := r.QueryRow(ctx, query, userID).Scan(&level)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get privacy level: %w", err)
	}

	return &level, nil
}

// SetLevel создаёт или перезаписывает уровень приватности
func (r *PrivacyRepository) SetLevel(ctx context.Context, userID string, level model.PrivacyLevel) error {
	query := `
		INSERT INTO privacy_settings (student_id, level, create_time)
		VALUES ($1, $2, now())
		ON CONFLICT (student_id) DO UPDATE SET level = EXCLUDED.level
	`

	if _, err := r.ExecAffected(ctx, query, userID, level); err != nil {
		return fmt.Errorf("set privacy level: %w", err)
	}

	return nil
}
