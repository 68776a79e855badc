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

// CreateParticipant inserts a membership row. The unique constraint on
// (activity_id, account_id) surfaces as ErrDuplicate.
func (r *Impl) CreateParticipant(ctx context.Context, db bun.IDB, participant *Participant) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().Model(participant).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create participant: %w", mapPgError(err))
	}
	return nil
}

// GetParticipant retrieves the membership row for an account in an activity.
func (r *Impl) GetParticipant(ctx context.Context, db bun.IDB, activityID, accountID uuid.UUID) (*Participant, error) {
	db = r.resolveDB(db)
	participant := new(Participant)
	err := db.NewSelect().
		Model(participant).
		Where("p.activity_id = ? AND p.account_id = ?", activityID, accountID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// GetParticipantByID retrieves a participant by primary key.
func (r *Impl) GetParticipantByID(ctx context.Context, db bun.IDB, participantID uuid.UUID) (*Participant, error) {
	db = r.resolveDB(db)
	participant := new(Participant)
	err := db.NewSelect().
		Model(participant).
		Where("p.id = ?", participantID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get participant by id: %w", err)
	}
	return participant, nil
}

// ListParticipants returns all membership rows for an activity.
func (r *Impl) ListParticipants(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*Participant, error) {
	db = r.resolveDB(db)
	var participants []*Participant
	err := db.NewSelect().
		Model(&participants).
		Where("p.activity_id = ?", activityID).
		Order("p.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// ListParticipationsFor returns the account's membership rows across all
// activities.
func (r *Impl) ListParticipationsFor(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*Participant, error) {
	db = r.resolveDB(db)
	var participants []*Participant
	err := db.NewSelect().
		Model(&participants).
		Where("p.account_id = ?", accountID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	return participants, nil
}

// UpdateParticipantStatus persists an attestation transition, including the
// responded_at stamp decided by the caller.
func (r *Impl) UpdateParticipantStatus(ctx context.Context, db bun.IDB, participant *Participant) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model(participant).
		Column("status", "responded_at").
		Where("id = ?", participant.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update participant status: %w", err)
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

// MarkContributed sets has_contributed and stamps last_contribution_at.
// The flag is sticky: nothing ever sets it back to false.
func (r *Impl) MarkContributed(ctx context.Context, db bun.IDB, participantID uuid.UUID) error {
	db = r.resolveDB(db)
	_, err := db.NewUpdate().
		Model((*Participant)(nil)).
		Set("has_contributed = TRUE").
		Set("last_contribution_at = ?", time.Now()).
		Where("id = ?", participantID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark participant as contributed: %w", err)
	}
	return nil
}

// DeleteParticipant removes a membership row; its contribution header and
// detail records cascade.
func (r *Impl) DeleteParticipant(ctx context.Context, db bun.IDB, participantID uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Participant)(nil)).
		Where("id = ?", participantID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
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
