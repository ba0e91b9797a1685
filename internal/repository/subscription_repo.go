package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"youapi-backend/internal/models"
)

type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// Upsert writes the user's subscription record and, when eventType is set,
// appends an audit row with the raw webhook payload.
func (r *SubscriptionRepo) Upsert(ctx context.Context, sub *models.Subscription, eventType string, rawEvent []byte) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO subscriptions (user_id, status, product_id, expired_at, is_trial, last_event_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			product_id = EXCLUDED.product_id,
			expired_at = EXCLUDED.expired_at,
			is_trial = EXCLUDED.is_trial,
			last_event_type = EXCLUDED.last_event_type,
			updated_at = NOW()`

	var lastEventType *string
	if eventType != "" {
		lastEventType = &eventType
	}

	if _, err := tx.Exec(ctx, query,
		sub.UserID, sub.Status, sub.ProductID, sub.ExpiredAt, sub.IsTrial, lastEventType,
	); err != nil {
		return err
	}

	if eventType != "" {
		if _, err := tx.Exec(ctx,
			`INSERT INTO subscription_events (id, user_id, event_type, product_id, raw_event)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), sub.UserID, eventType, sub.ProductID, rawEvent,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByUser returns the user's subscription record, or (nil, nil) when the
// user has never had one.
func (r *SubscriptionRepo) GetByUser(ctx context.Context, userID string) (*models.Subscription, error) {
	sub := &models.Subscription{}
	query := `SELECT user_id, status, product_id, expired_at, is_trial, last_event_type, created_at, updated_at
		FROM subscriptions WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&sub.UserID, &sub.Status, &sub.ProductID, &sub.ExpiredAt,
		&sub.IsTrial, &sub.LastEventType, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return sub, nil
}
