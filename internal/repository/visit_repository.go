package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/Freeeeeet/everyclass_server/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VisitRepository struct {
	*base.Repository
}

func NewVisitRepository(pool *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{Repository: base.NewRepository(pool)}
}

// UpsertTrack записывает время последнего визита, одна строка на пару (host, visitor)
func (r *VisitRepository) UpsertTrack(ctx context.Context, hostID, visitorID string, at time.Time) error {
	query := `
		INSERT INTO visit_tracks (host_id, visitor_id, last_visit_time)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT unq_host_visitor
		DO UPDATE SET last_visit_time = EXCLUDED.last_visit_time
	`

	if _, err := r.ExecAffected(ctx, query, hostID, visitorID, at); err != nil {
		return fmt.Errorf("upsert visit track: %w", err)
	}

	return nil
}

// ListTracks получает посетителей, последние сверху
func (r *VisitRepository) ListTracks(ctx context.Context, hostID string) ([]*model.VisitTrack, error) {
	query := `
		SELECT host_id, visitor_id, last_visit_time
		FROM visit_tracks
		WHERE host_id = $1
		ORDER BY last_visit_time DESC
	`

	rows, err := r.Query(ctx, query, hostID)
	if err != nil {
		return nil, fmt.Errorf("list visit tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*model.VisitTrack
	for rows.Next() {
		var track model.VisitTrack
		if err := rows.Scan(&track.HostID, &track.VisitorID, &track.LastVisitTime); err != nil {
			return nil, fmt.Errorf("scan visit track: %w", err)
		}
		tracks = append(tracks, &track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visit tracks: %w", err)
	}

	return tracks, nil
}

// AddVisitor учитывает посетителя в счётчике; повторный посетитель не меняет счётчик
func (r *VisitRepository) AddVisitor(ctx context.Context, hostID, visitorKey string) error {
	query := `
		INSERT INTO visitor_counts (host_id, visitor_key)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.ExecAffected(ctx, query, hostID, visitorKey); err != nil {
		return fmt.Errorf("add visitor: %w", err)
	}

	return nil
}

// CountVisitors подсчитывает уникальных посетителей
func (r *VisitRepository) CountVisitors(ctx context.Context, hostID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM visitor_counts
		WHERE host_id = $1
	`

	var count int64
	if err := r.QueryRow(ctx, query, hostID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count visitors: %w", err)
	}

	return count, nil
}
