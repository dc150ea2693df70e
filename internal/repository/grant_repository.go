package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/Freeeeeet/everyclass_server/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicatePending возвращается, когда для пары уже есть pending запись
var ErrDuplicatePending = errors.New("pending grant already exists for this pair")

const grantColumns = `record_id, grant_type, status, grant_time, user_id, to_user_id`

type GrantRepository struct {
	*base.Repository
}

func NewGrantRepository(pool *pgxpool.Pool) *GrantRepository {
	return &GrantRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт запись о разрешении
func (r *GrantRepository) Create(ctx context.Context, grant *model.Grant) error {
	query := `
		INSERT INTO grants (grant_type, status, user_id, to_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING record_id, grant_time
	`

	err := r.QueryRow(
		ctx, query,
		grant.GrantType,
		grant.Status,
		grant.GrantorID,
		grant.GranteeID,
	).Scan(&grant.RecordID, &grant.GrantTime)

	if err != nil {
		if base.IsUniqueViolation(err, "unq_grants_pending") {
			return ErrDuplicatePending
		}
		return fmt.Errorf("create grant: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *GrantRepository) GetByID(ctx context.Context, recordID int64) (*model.Grant, error) {
	query := `SELECT ` + grantColumns + ` FROM grants WHERE record_id = $1`

	grant, err := scanGrant(r.QueryRow(ctx, query, recordID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grant: %w", err)
	}

	return grant, nil
}

// UpdateStatus переводит запись из статуса from в статус to.
// Возвращает false, если запись уже не в статусе from.
func (r *GrantRepository) UpdateStatus(ctx context.Context, recordID int64, from, to model.GrantStatus) (bool, error) {
	query := `
		UPDATE grants
		SET status = $1
		WHERE record_id = $2 AND status = $3
	`

	affected, err := r.ExecAffected(ctx, query, to, recordID, from)
	if err != nil {
		return false, fmt.Errorf("update grant status: %w", err)
	}

	return affected > 0, nil
}

// HasStatus проверяет, есть ли запись с данным статусом для пары (grantor, grantee)
func (r *GrantRepository) HasStatus(ctx context.Context, grantorID, granteeID string, status model.GrantStatus) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM grants
			WHERE user_id = $1 AND to_user_id = $2 AND status = $3
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, grantorID, granteeID, status).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check grant status: %w", err)
	}

	return exists, nil
}

// ListByGrantor получает записи владельца расписания с данным статусом
func (r *GrantRepository) ListByGrantor(ctx context.Context, grantorID string, status model.GrantStatus) ([]*model.Grant, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM grants
		WHERE user_id = $1 AND status = $2
		ORDER BY grant_time ASC
	`

	rows, err := r.Query(ctx, query, grantorID, status)
	if err != nil {
		return nil, fmt.Errorf("list grants by grantor: %w", err)
	}

	return collectGrants(rows)
}

// ListByGrantee получает записи смотрящего с данным статусом
func (r *GrantRepository) ListByGrantee(ctx context.Context, granteeID string, status model.GrantStatus) ([]*model.Grant, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM grants
		WHERE to_user_id = $1 AND status = $2
		ORDER BY grant_time DESC
	`

	rows, err := r.Query(ctx, query, granteeID, status)
	if err != nil {
		return nil, fmt.Errorf("list grants by grantee: %w", err)
	}

	return collectGrants(rows)
}

func scanGrant(row pgx.Row) (*model.Grant, error) {
	var grant model.Grant
	err := row.Scan(
		&grant.RecordID,
		&grant.GrantType,
		&grant.Status,
		&grant.GrantTime,
		&grant.GrantorID,
		&grant.GranteeID,
	)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func collectGrants(rows pgx.Rows) ([]*model.Grant, error) {
	defer rows.Close()

	var grants []*model.Grant
	for rows.Next() {
		grant, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		grants = append(grants, grant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grants: %w", err)
	}

	return grants, nil
}
