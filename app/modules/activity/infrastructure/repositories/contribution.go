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

// CreateHeader inserts a contribution header. The unique constraint on
// participant_id keeps the relationship 1:1.
func (r *Impl) CreateHeader(ctx context.Context, db bun.IDB, header *ContributionHeader) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().Model(header).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create contribution header: %w", mapPgError(err))
	}
	return nil
}

// GetHeader retrieves a contribution header by ID.
func (r *Impl) GetHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) (*ContributionHeader, error) {
	db = r.resolveDB(db)
	header := new(ContributionHeader)
	err := db.NewSelect().
		Model(header).
		Where("ch.id = ?", headerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contribution header: %w", err)
	}
	return header, nil
}

// GetHeaderByParticipant retrieves the header owned by a participant row.
func (r *Impl) GetHeaderByParticipant(ctx context.Context, db bun.IDB, participantID uuid.UUID) (*ContributionHeader, error) {
	db = r.resolveDB(db)
	header := new(ContributionHeader)
	err := db.NewSelect().
		Model(header).
		Where("ch.participant_id = ?", participantID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get header by participant: %w", err)
	}
	return header, nil
}

// ListHeadersByActivity returns the headers of all participants in an activity.
func (r *Impl) ListHeadersByActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*ContributionHeader, error) {
	db = r.resolveDB(db)
	var headers []*ContributionHeader
	err := db.NewSelect().
		Model(&headers).
		Join("JOIN participants AS p ON p.id = ch.participant_id").
		Where("p.activity_id = ?", activityID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list headers by activity: %w", err)
	}
	return headers, nil
}

// LockHeader takes an exclusive row lock on the header with NOWAIT so a
// contended writer fails fast instead of queueing behind the lock holder.
// All detail-record writes and the recompute for a header happen under this
// lock within a single transaction.
func (r *Impl) LockHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) (*ContributionHeader, error) {
	db = r.resolveDB(db)
	header := new(ContributionHeader)
	err := db.NewSelect().
		Model(header).
		Where("ch.id = ?", headerID).
		For("UPDATE NOWAIT").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock contribution header: %w", mapPgError(err))
	}
	return header, nil
}

// UpdateHeaderTotals writes the aggregator's recomputed totals. This is the
// only code path that touches total, units_completed, or delta.
func (r *Impl) UpdateHeaderTotals(ctx context.Context, db bun.IDB, headerID uuid.UUID, total, unitsCompleted int, delta *int) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*ContributionHeader)(nil)).
		Set("total = ?", total).
		Set("units_completed = ?", unitsCompleted).
		Set("delta = ?", delta).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", headerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update header totals: %w", err)
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

// ConfirmHeader marks the header's values as reviewed by its participant.
func (r *Impl) ConfirmHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*ContributionHeader)(nil)).
		Set("confirmed = TRUE").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", headerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to confirm header: %w", err)
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

// UpsertDetailRecord inserts or updates the record keyed on (header, ordinal).
func (r *Impl) UpsertDetailRecord(ctx context.Context, db bun.IDB, record *DetailRecord) error {
	db = r.resolveDB(db)
	record.UpdatedAt = time.Now()
	_, err := db.NewInsert().
		Model(record).
		On("CONFLICT (header_id, ordinal) DO UPDATE").
		Set("primary_count = EXCLUDED.primary_count").
		Set("secondary_count = EXCLUDED.secondary_count").
		Set("flag = EXCLUDED.flag").
		Set("entered_by = EXCLUDED.entered_by").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert detail record: %w", mapPgError(err))
	}
	return nil
}

// DeleteDetailRecord removes one scoring unit.
func (r *Impl) DeleteDetailRecord(ctx context.Context, db bun.IDB, headerID uuid.UUID, ordinal int) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*DetailRecord)(nil)).
		Where("header_id = ? AND ordinal = ?", headerID, ordinal).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete detail record: %w", err)
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

// ListDetailRecords returns the current record set for a header, ordered by
// ordinal. The aggregator recomputes from exactly this set.
func (r *Impl) ListDetailRecords(ctx context.Context, db bun.IDB, headerID uuid.UUID) ([]*DetailRecord, error) {
	db = r.resolveDB(db)
	var records []*DetailRecord
	err := db.NewSelect().
		Model(&records).
		Where("dr.header_id = ?", headerID).
		Order("dr.ordinal ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list detail records: %w", err)
	}
	return records, nil
}

// ListDetailRecordsByActivity returns all records for an activity, used by
// the read path.
func (r *Impl) ListDetailRecordsByActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*DetailRecord, error) {
	db = r.resolveDB(db)
	var records []*DetailRecord
	err := db.NewSelect().
		Model(&records).
		Join("JOIN contribution_headers AS ch ON ch.id = dr.header_id").
		Join("JOIN participants AS p ON p.id = ch.participant_id").
		Where("p.activity_id = ?", activityID).
		Order("dr.ordinal ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list detail records by activity: %w", err)
	}
	return records, nil
}
