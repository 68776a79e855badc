package activityservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
	"github.com/fairway-collective/roundhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AddParticipants invites a batch of accounts to an activity. The batch is
// all-or-nothing: if any account already holds a row the whole call fails
// with ErrDuplicateParticipant and nothing is inserted.
func (s *ActivityService) AddParticipants(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddParticipantsInput) ([]activitydomain.Participant, error) {
	addTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]activitydomain.Participant, error], error) {
		return s.addParticipantsLogic(ctx, db, actor, activityID, input)
	}

	return unwrap(withTelemetry(s, ctx, "AddParticipants", activityID.String(), func(ctx context.Context) (results.OperationResult[[]activitydomain.Participant, error], error) {
		return runInTx(s, ctx, addTx)
	}))
}

func (s *ActivityService) addParticipantsLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddParticipantsInput) (results.OperationResult[[]activitydomain.Participant, error], error) {
	fail := results.FailureResult[[]activitydomain.Participant, error]

	_, _, _, err := s.getActivityFor(ctx, db, actor, activityID, activitydomain.OpInviteParticipant)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[[]activitydomain.Participant, error]{}, err
	}

	role := input.DefaultRole
	if role == "" {
		role = activitydomain.RoleParticipant
	}
	if !role.IsValid() || role == activitydomain.RoleCreator {
		return fail(fmt.Errorf("%w: cannot invite with role %q", ErrInvalidInput, role)), nil
	}

	// Check the whole batch before inserting anything so a mid-batch
	// duplicate cannot leave a partial invite behind.
	for _, accountID := range input.AccountIDs {
		_, err := s.repo.GetParticipant(ctx, db, activityID, accountID)
		if err == nil {
			return fail(fmt.Errorf("%w: account %s", ErrDuplicateParticipant, accountID)), nil
		}
		if !errors.Is(err, activitydb.ErrNotFound) {
			return results.OperationResult[[]activitydomain.Participant, error]{}, fmt.Errorf("failed to check existing participant: %w", err)
		}
	}

	invited := make([]activitydomain.Participant, 0, len(input.AccountIDs))
	for _, accountID := range input.AccountIDs {
		row := &activitydb.Participant{
			ID:         uuid.New(),
			ActivityID: activityID,
			AccountID:  accountID,
			Status:     activitydomain.AttestationPending,
			Role:       role,
		}
		if err := s.repo.CreateParticipant(ctx, db, row); err != nil {
			// Racing invite for the same account; the unique index is
			// the source of truth.
			if errors.Is(err, activitydb.ErrDuplicate) {
				return fail(fmt.Errorf("%w: account %s", ErrDuplicateParticipant, accountID)), nil
			}
			return results.OperationResult[[]activitydomain.Participant, error]{}, fmt.Errorf("failed to create participant: %w", err)
		}
		invited = append(invited, toDomainParticipant(row))
	}

	return results.SuccessResult[[]activitydomain.Participant, error](invited), nil
}

// RemoveParticipant removes a membership row. A participant may remove
// themselves; the creator and organizers may remove anyone except the
// creator, whose row is permanent.
func (s *ActivityService) RemoveParticipant(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, accountID activitydomain.AccountID) error {
	removeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		return s.removeParticipantLogic(ctx, db, actor, activityID, accountID)
	}

	_, err := unwrap(withTelemetry(s, ctx, "RemoveParticipant", activityID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, removeTx)
	}))
	return err
}

func (s *ActivityService) removeParticipantLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, activityID uuid.UUID, accountID activitydomain.AccountID) (results.OperationResult[bool, error], error) {
	fail := results.FailureResult[bool, error]

	op := activitydomain.OpRemoveParticipant
	if actor == accountID {
		op = activitydomain.OpLeaveActivity
	}

	activity, _, _, err := s.getActivityFor(ctx, db, actor, activityID, op)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[bool, error]{}, err
	}

	if activity.CreatedBy == accountID {
		return fail(fmt.Errorf("%w: the creator's membership is permanent", ErrAccessDenied)), nil
	}

	target, err := s.repo.GetParticipant(ctx, db, activityID, accountID)
	if err != nil {
		if errors.Is(err, activitydb.ErrNotFound) {
			return fail(ErrNotFound), nil
		}
		return results.OperationResult[bool, error]{}, fmt.Errorf("failed to load participant: %w", err)
	}

	// Removing the row cascades away the header and detail records, so a
	// re-invited account starts from a clean slate.
	if err := s.repo.DeleteParticipant(ctx, db, target.ID); err != nil {
		return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete participant: %w", err)
	}

	return results.SuccessResult[bool, error](true), nil
}

// Attest records the actor's answer to their own invitation. Confirming is
// idempotent: a repeat confirm keeps the first responded_at timestamp.
func (s *ActivityService) Attest(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, status activitydomain.AttestationStatus) (*activitydomain.Participant, error) {
	attestTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitydomain.Participant, error], error) {
		return s.attestLogic(ctx, db, actor, activityID, status)
	}

	return unwrap(withTelemetry(s, ctx, "Attest", activityID.String(), func(ctx context.Context) (results.OperationResult[*activitydomain.Participant, error], error) {
		return runInTx(s, ctx, attestTx)
	}))
}

func (s *ActivityService) attestLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, activityID uuid.UUID, status activitydomain.AttestationStatus) (results.OperationResult[*activitydomain.Participant, error], error) {
	fail := results.FailureResult[*activitydomain.Participant, error]

	if !status.IsValid() || status == activitydomain.AttestationPending {
		return fail(fmt.Errorf("%w: cannot attest to %q", ErrInvalidAttestationTransition, status)), nil
	}

	_, _, row, err := s.getActivityFor(ctx, db, actor, activityID, activitydomain.OpAttest)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[*activitydomain.Participant, error]{}, err
	}

	if row.Status == status {
		// Re-attesting the same state is a no-op, not an error.
		participant := toDomainParticipant(row)
		return results.SuccessResult[*activitydomain.Participant, error](&participant), nil
	}

	if !activitydomain.CanTransition(row.Status, status) {
		return fail(fmt.Errorf("%w: %s -> %s", ErrInvalidAttestationTransition, row.Status, status)), nil
	}

	now := time.Now()
	row.Status = status
	row.RespondedAt = &now
	if err := s.repo.UpdateParticipantStatus(ctx, db, row); err != nil {
		return results.OperationResult[*activitydomain.Participant, error]{}, fmt.Errorf("failed to update attestation: %w", err)
	}

	// A confirmed participant gets their contribution header eagerly, so
	// score entry never has to create one mid-flight.
	if status == activitydomain.AttestationConfirmed {
		header := &activitydb.ContributionHeader{
			ID:            uuid.New(),
			ParticipantID: row.ID,
			EnteredBy:     actor,
		}
		if err := s.repo.CreateHeader(ctx, db, header); err != nil && !errors.Is(err, activitydb.ErrDuplicate) {
			return results.OperationResult[*activitydomain.Participant, error]{}, fmt.Errorf("failed to create contribution header: %w", err)
		}
	}

	participant := toDomainParticipant(row)
	return results.SuccessResult[*activitydomain.Participant, error](&participant), nil
}
