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

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new activity repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// CreateActivity inserts a new activity.
func (r *Impl) CreateActivity(ctx context.Context, db bun.IDB, activity *Activity) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().Model(activity).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", mapPgError(err))
	}
	return nil
}

// GetActivity retrieves an activity by ID.
func (r *Impl) GetActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) (*Activity, error) {
	db = r.resolveDB(db)
	activity := new(Activity)
	err := db.NewSelect().
		Model(activity).
		Where("a.id = ?", activityID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

// UpdateActivity persists mutable activity fields. The activity type is
// intentionally not in the column list: it is immutable after creation.
func (r *Impl) UpdateActivity(ctx context.Context, db bun.IDB, activity *Activity) error {
	db = r.resolveDB(db)
	activity.UpdatedAt = time.Now()
	result, err := db.NewUpdate().
		Model(activity).
		Column("title", "description", "date", "location", "visibility", "status", "updated_at").
		Where("id = ?", activity.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
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

// DeleteActivity removes an activity. Participants, headers, detail records,
// media, and the feed summary go with it via ON DELETE CASCADE.
func (r *Impl) DeleteActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Activity)(nil)).
		Where("id = ?", activityID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
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

// ListActivitiesFor returns the candidate listing set for an account: public
// activities plus those it participates in. Per-row visibility is decided by
// the access evaluator above; private activities where the account is a plain
// participant are filtered out there.
func (r *Impl) ListActivitiesFor(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*Activity, error) {
	db = r.resolveDB(db)
	var activities []*Activity
	err := db.NewSelect().
		Model(&activities).
		Where("a.visibility = ?", "public").
		WhereOr("a.id IN (SELECT activity_id FROM participants WHERE account_id = ?)", accountID).
		Order("a.date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// SetSummaryRef records the published feed summary reference on the activity.
func (r *Impl) SetSummaryRef(ctx context.Context, db bun.IDB, activityID, summaryRef uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Activity)(nil)).
		Set("summary_ref = ?", summaryRef).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", activityID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set summary ref: %w", err)
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
