package activitydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CreateMedia inserts a media reference row. The blob itself lives in the
// external media store; only the URL travels through here.
func (r *Impl) CreateMedia(ctx context.Context, db bun.IDB, media *Media) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().Model(media).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create media reference: %w", mapPgError(err))
	}
	return nil
}

// DeleteMedia removes a media reference.
func (r *Impl) DeleteMedia(ctx context.Context, db bun.IDB, mediaID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Media)(nil)).
		Where("id = ?", mediaID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete media reference: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMedia returns the media references for an activity in display order.
func (r *Impl) ListMedia(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*Media, error) {
	db = r.resolveDB(db)
	var media []*Media
	err := db.NewSelect().
		Model(&media).
		Where("am.activity_id = ?", activityID).
		Order("am.position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return media, nil
}

// UpsertFeedSummary creates or refreshes the published snapshot for an
// activity, keeping the summary_ref stable across republishes.
func (r *Impl) UpsertFeedSummary(ctx context.Context, db bun.IDB, summary *FeedSummary) error {
	db = r.resolveDB(db)
	summary.UpdatedAt = time.Now()
	_, err := db.NewInsert().
		Model(summary).
		On("CONFLICT (activity_id) DO UPDATE").
		Set("snapshot = EXCLUDED.snapshot").
		Set("published_at = EXCLUDED.published_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert feed summary: %w", err)
	}
	return nil
}

// GetFeedSummary retrieves the published snapshot for an activity.
func (r *Impl) GetFeedSummary(ctx context.Context, db bun.IDB, activityID uuid.UUID) (*FeedSummary, error) {
	db = r.resolveDB(db)
	summary := new(FeedSummary)
	err := db.NewSelect().
		Model(summary).
		Where("fs.activity_id = ?", activityID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feed summary: %w", err)
	}
	return summary, nil
}
