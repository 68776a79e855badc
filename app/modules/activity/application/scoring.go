package activityservice

import (
	"context"
	"errors"
	"fmt"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
	"github.com/fairway-collective/roundhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// headerScope resolves a contribution header to its participant, activity,
// and the operation the actor needs: writing your own records versus
// prefilling someone else's are different permissions.
func (s *ActivityService) headerScope(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, headerID uuid.UUID) (*activitydb.ContributionHeader, *activitydb.Participant, *activitydb.Activity, error) {
	header, err := s.repo.GetHeader(ctx, db, headerID)
	if err != nil {
		if errors.Is(err, activitydb.ErrNotFound) {
			return nil, nil, nil, ErrAccessDenied
		}
		return nil, nil, nil, fmt.Errorf("failed to load contribution header: %w", err)
	}

	owner, err := s.repo.GetParticipantByID(ctx, db, header.ParticipantID)
	if err != nil {
		if errors.Is(err, activitydb.ErrNotFound) {
			return nil, nil, nil, ErrAccessDenied
		}
		return nil, nil, nil, fmt.Errorf("failed to load header participant: %w", err)
	}

	op := activitydomain.OpWriteOwnDetail
	if owner.AccountID != actor {
		op = activitydomain.OpPrefillDetail
	}

	activity, _, _, err := s.getActivityFor(ctx, db, actor, owner.ActivityID, op)
	if err != nil {
		return nil, nil, nil, err
	}

	return header, owner, activity, nil
}

// recomputeHeader re-derives the cached totals from every record under the
// locked header and writes them back. The recompute is always from scratch;
// totals are never adjusted incrementally.
func (s *ActivityService) recomputeHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID, rules activitydomain.ScoringRules) (activitydomain.Totals, []activitydomain.DetailRecord, error) {
	rows, err := s.repo.ListDetailRecords(ctx, db, headerID)
	if err != nil {
		return activitydomain.Totals{}, nil, fmt.Errorf("failed to list detail records: %w", err)
	}

	records := toDomainRecords(rows)
	totals := activitydomain.RecomputeTotals(records, rules)

	if err := s.repo.UpdateHeaderTotals(ctx, db, headerID, totals.Total, totals.UnitsCompleted, totals.Delta); err != nil {
		return activitydomain.Totals{}, nil, fmt.Errorf("failed to update header totals: %w", err)
	}
	return totals, records, nil
}

// verifyStoredTotals checks the cached totals against a fresh recompute of
// the records already on the header. A mismatch means some code path wrote
// totals outside the aggregator; we refuse to paper over it.
func verifyStoredTotals(header *activitydb.ContributionHeader, records []activitydomain.DetailRecord, rules activitydomain.ScoringRules) error {
	expected := activitydomain.RecomputeTotals(records, rules)
	if header.Total != expected.Total || header.UnitsCompleted != expected.UnitsCompleted {
		return fmt.Errorf("%w: header %s stores total=%d units=%d, records say total=%d units=%d",
			ErrInvariantViolation, header.ID, header.Total, header.UnitsCompleted, expected.Total, expected.UnitsCompleted)
	}
	return nil
}

// WriteDetailRecord upserts one scoring unit and recomputes the header's
// cached totals inside the same transaction. Concurrent writers to the same
// header serialize on the header row lock; a held lock surfaces as
// ErrContention so callers can retry.
func (s *ActivityService) WriteDetailRecord(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID, input activitydomain.WriteDetailRecordInput) (*activitydomain.ContributionHeader, error) {
	writeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitydomain.ContributionHeader, error], error) {
		return s.writeDetailRecordLogic(ctx, db, actor, headerID, input)
	}

	return unwrap(withTelemetry(s, ctx, "WriteDetailRecord", headerID.String(), func(ctx context.Context) (results.OperationResult[*activitydomain.ContributionHeader, error], error) {
		return runInTx(s, ctx, writeTx)
	}))
}

func (s *ActivityService) writeDetailRecordLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, headerID uuid.UUID, input activitydomain.WriteDetailRecordInput) (results.OperationResult[*activitydomain.ContributionHeader, error], error) {
	fail := results.FailureResult[*activitydomain.ContributionHeader, error]

	_, owner, activity, err := s.headerScope(ctx, db, actor, headerID)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, err
	}

	rules, ok := activitydomain.RulesFor(activity.Type)
	if !ok {
		return fail(fmt.Errorf("%w: %s activities carry no scoring", ErrInvalidDetailRecord, activity.Type)), nil
	}

	locked, err := s.repo.LockHeader(ctx, db, headerID)
	if err != nil {
		if errors.Is(err, activitydb.ErrLockNotAvailable) {
			return fail(ErrContention), nil
		}
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, fmt.Errorf("failed to lock header: %w", err)
	}

	existing, err := s.repo.ListDetailRecords(ctx, db, headerID)
	if err != nil {
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, fmt.Errorf("failed to list detail records: %w", err)
	}
	if err := verifyStoredTotals(locked, toDomainRecords(existing), rules); err != nil {
		return fail(err), nil
	}

	if err := rules.ValidateMeasures(input.Ordinal, input.PrimaryCount, input.SecondaryCount); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrInvalidDetailRecord, err)), nil
	}

	record := &activitydb.DetailRecord{
		ID:             uuid.New(),
		HeaderID:       headerID,
		Ordinal:        input.Ordinal,
		PrimaryCount:   input.PrimaryCount,
		SecondaryCount: input.SecondaryCount,
		Flag:           input.Flag,
		EnteredBy:      actor,
	}
	if err := s.repo.UpsertDetailRecord(ctx, db, record); err != nil {
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, fmt.Errorf("failed to upsert detail record: %w", err)
	}

	totals, _, err := s.recomputeHeader(ctx, db, headerID, rules)
	if err != nil {
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, err
	}

	// The flag flips once, on the first unit ever recorded, and deleting
	// records later does not clear it.
	if !owner.HasContributed && totals.UnitsCompleted > 0 {
		if err := s.repo.MarkContributed(ctx, db, owner.ID); err != nil {
			return results.OperationResult[*activitydomain.ContributionHeader, error]{}, fmt.Errorf("failed to mark participant contributed: %w", err)
		}
	}

	locked.Total = totals.Total
	locked.UnitsCompleted = totals.UnitsCompleted
	locked.Delta = totals.Delta
	header := toDomainHeader(locked)
	return results.SuccessResult[*activitydomain.ContributionHeader, error](&header), nil
}

// DeleteDetailRecord removes one scoring unit and recomputes the totals
// under the same lock discipline as writes.
func (s *ActivityService) DeleteDetailRecord(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID, ordinal int) (*activitydomain.ContributionHeader, error) {
	deleteTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitydomain.ContributionHeader, error], error) {
		return s.deleteDetailRecordLogic(ctx, db, actor, headerID, ordinal)
	}

	return unwrap(withTelemetry(s, ctx, "DeleteDetailRecord", headerID.String(), func(ctx context.Context) (results.OperationResult[*activitydomain.ContributionHeader, error], error) {
		return runInTx(s, ctx, deleteTx)
	}))
}

func (s *ActivityService) deleteDetailRecordLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, headerID uuid.UUID, ordinal int) (results.OperationResult[*activitydomain.ContributionHeader, error], error) {
	fail := results.FailureResult[*activitydomain.ContributionHeader, error]

	_, _, activity, err := s.headerScope(ctx, db, actor, headerID)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, err
	}

	rules, ok := activitydomain.RulesFor(activity.Type)
	if !ok {
		return fail(fmt.Errorf("%w: %s activities carry no scoring", ErrInvalidDetailRecord, activity.Type)), nil
	}

	locked, err := s.repo.LockHeader(ctx, db, headerID)
	if err != nil {
		if errors.Is(err, activitydb.ErrLockNotAvailable) {
			return fail(ErrContention), nil
		}
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, fmt.Errorf("failed to lock header: %w", err)
	}

	if err := s.repo.DeleteDetailRecord(ctx, db, headerID, ordinal); err != nil {
		if errors.Is(err, activitydb.ErrNotFound) {
			return fail(fmt.Errorf("%w: no record at ordinal %d", ErrNotFound, ordinal)), nil
		}
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, fmt.Errorf("failed to delete detail record: %w", err)
	}

	totals, _, err := s.recomputeHeader(ctx, db, headerID, rules)
	if err != nil {
		return results.OperationResult[*activitydomain.ContributionHeader, error]{}, err
	}

	locked.Total = totals.Total
	locked.UnitsCompleted = totals.UnitsCompleted
	locked.Delta = totals.Delta
	header := toDomainHeader(locked)
	return results.SuccessResult[*activitydomain.ContributionHeader, error](&header), nil
}

// ConfirmContribution marks the actor's own totals as confirmed. Only the
// participant the header belongs to can confirm it; confirming twice is a
// no-op.
func (s *ActivityService) ConfirmContribution(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID) error {
	confirmTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		return s.confirmContributionLogic(ctx, db, actor, headerID)
	}

	_, err := unwrap(withTelemetry(s, ctx, "ConfirmContribution", headerID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, confirmTx)
	}))
	return err
}

func (s *ActivityService) confirmContributionLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, headerID uuid.UUID) (results.OperationResult[bool, error], error) {
	fail := results.FailureResult[bool, error]

	header, err := s.repo.GetHeader(ctx, db, headerID)
	if err != nil {
		if errors.Is(err, activitydb.ErrNotFound) {
			return fail(ErrAccessDenied), nil
		}
		return results.OperationResult[bool, error]{}, fmt.Errorf("failed to load contribution header: %w", err)
	}

	owner, err := s.repo.GetParticipantByID(ctx, db, header.ParticipantID)
	if err != nil {
		if errors.Is(err, activitydb.ErrNotFound) {
			return fail(ErrAccessDenied), nil
		}
		return results.OperationResult[bool, error]{}, fmt.Errorf("failed to load header participant: %w", err)
	}

	// Confirmation is a personal act: even the creator cannot confirm on
	// someone else's behalf.
	if owner.AccountID != actor {
		return fail(ErrAccessDenied), nil
	}

	if _, _, _, err := s.getActivityFor(ctx, db, actor, owner.ActivityID, activitydomain.OpConfirmContribution); err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[bool, error]{}, err
	}

	if header.Confirmed {
		return results.SuccessResult[bool, error](true), nil
	}

	if err := s.repo.ConfirmHeader(ctx, db, headerID); err != nil {
		return results.OperationResult[bool, error]{}, fmt.Errorf("failed to confirm header: %w", err)
	}
	return results.SuccessResult[bool, error](true), nil
}
