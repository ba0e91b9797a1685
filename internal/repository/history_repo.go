package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"youapi-backend/internal/models"
)

type HistoryRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

// Upsert records a video lookup in the user's history. A repeated lookup of
// the same video refreshes the entry instead of duplicating it.
func (r *HistoryRepo) Upsert(ctx context.Context, rec *models.SummaryRequest) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Source == "" {
		rec.Source = models.SourceYouTube
	}

	query := `INSERT INTO summary_requests (id, user_id, source, video_id, title, author, thumbnail_url, length)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, source, video_id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			thumbnail_url = EXCLUDED.thumbnail_url,
			length = EXCLUDED.length,
			created_at = NOW()
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		rec.ID, rec.UserID, rec.Source, rec.VideoID, rec.Title, rec.Author, rec.ThumbnailURL, rec.Length,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// ListByUser returns the user's history, most recent first.
func (r *HistoryRepo) ListByUser(ctx context.Context, userID string) ([]*models.SummaryRequest, error) {
	query := `SELECT id, user_id, source, video_id, title, author, thumbnail_url, length, created_at
		FROM summary_requests WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []*models.SummaryRequest{}
	for rows.Next() {
		rec := &models.SummaryRequest{}
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Source, &rec.VideoID,
			&rec.Title, &rec.Author, &rec.ThumbnailURL, &rec.Length, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		history = append(history, rec)
	}

	return history, rows.Err()
}
