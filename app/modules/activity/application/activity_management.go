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

// CreateActivity opens a new activity. The creator's own participant row is
// created in the same transaction with role creator and status confirmed.
func (s *ActivityService) CreateActivity(ctx context.Context, actor activitydomain.AccountID, input activitydomain.CreateActivityInput) (*activitydomain.ActivityDetail, error) {
	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitydomain.ActivityDetail, error], error) {
		return s.createActivityLogic(ctx, db, actor, input)
	}

	return unwrap(withTelemetry(s, ctx, "CreateActivity", actor.String(), func(ctx context.Context) (results.OperationResult[*activitydomain.ActivityDetail, error], error) {
		return runInTx(s, ctx, createTx)
	}))
}

func (s *ActivityService) createActivityLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, input activitydomain.CreateActivityInput) (results.OperationResult[*activitydomain.ActivityDetail, error], error) {
	fail := results.FailureResult[*activitydomain.ActivityDetail, error]

	if !input.Type.IsValid() {
		return fail(fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, input.Type)), nil
	}
	if input.Visibility == "" {
		input.Visibility = activitydomain.VisibilityParticipantsOnly
	}
	if !input.Visibility.IsValid() {
		return fail(fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, input.Visibility)), nil
	}

	now := time.Now()
	activity := &activitydb.Activity{
		ID:          uuid.New(),
		CreatedBy:   actor,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		Visibility:  input.Visibility,
		Status:      activitydomain.ActivityStatusPending,
	}
	if err := s.repo.CreateActivity(ctx, db, activity); err != nil {
		return results.OperationResult[*activitydomain.ActivityDetail, error]{}, fmt.Errorf("failed to create activity: %w", err)
	}

	// The creator attests implicitly: their row exists for the activity's
	// whole lifetime and can never be removed.
	creator := &activitydb.Participant{
		ID:          uuid.New(),
		ActivityID:  activity.ID,
		AccountID:   actor,
		Status:      activitydomain.AttestationConfirmed,
		RespondedAt: &now,
		Role:        activitydomain.RoleCreator,
	}
	if err := s.repo.CreateParticipant(ctx, db, creator); err != nil {
		return results.OperationResult[*activitydomain.ActivityDetail, error]{}, fmt.Errorf("failed to create creator participant: %w", err)
	}

	detail := &activitydomain.ActivityDetail{
		Activity:     toDomainActivity(activity),
		Participants: []activitydomain.Participant{toDomainParticipant(creator)},
	}
	return results.SuccessResult[*activitydomain.ActivityDetail, error](detail), nil
}

// UpdateActivity applies the creator's patch to activity-level fields.
func (s *ActivityService) UpdateActivity(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.UpdateActivityInput) (*activitydomain.Activity, error) {
	updateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitydomain.Activity, error], error) {
		return s.updateActivityLogic(ctx, db, actor, activityID, input)
	}

	return unwrap(withTelemetry(s, ctx, "UpdateActivity", activityID.String(), func(ctx context.Context) (results.OperationResult[*activitydomain.Activity, error], error) {
		return runInTx(s, ctx, updateTx)
	}))
}

func (s *ActivityService) updateActivityLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.UpdateActivityInput) (results.OperationResult[*activitydomain.Activity, error], error) {
	fail := results.FailureResult[*activitydomain.Activity, error]

	activity, _, _, err := s.getActivityFor(ctx, db, actor, activityID, activitydomain.OpUpdateActivity)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[*activitydomain.Activity, error]{}, err
	}

	if input.Title != nil {
		activity.Title = *input.Title
	}
	if input.Description != nil {
		activity.Description = *input.Description
	}
	if input.Date != nil {
		activity.Date = *input.Date
	}
	if input.Location != nil {
		activity.Location = *input.Location
	}
	if input.Visibility != nil {
		if !input.Visibility.IsValid() {
			return fail(fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, *input.Visibility)), nil
		}
		activity.Visibility = *input.Visibility
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return fail(fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)), nil
		}
		activity.Status = *input.Status
	}

	if err := s.repo.UpdateActivity(ctx, db, activity); err != nil {
		return results.OperationResult[*activitydomain.Activity, error]{}, fmt.Errorf("failed to update activity: %w", err)
	}

	updated := toDomainActivity(activity)
	return results.SuccessResult[*activitydomain.Activity, error](&updated), nil
}

// DeleteActivity removes the activity and, through storage cascades, all of
// its participants, headers, detail records, media, and feed summary.
func (s *ActivityService) DeleteActivity(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) error {
	deleteTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		fail := results.FailureResult[bool, error]

		_, _, _, err := s.getActivityFor(ctx, db, actor, activityID, activitydomain.OpDeleteActivity)
		if err != nil {
			if errors.Is(err, ErrAccessDenied) {
				return fail(err), nil
			}
			return results.OperationResult[bool, error]{}, err
		}

		if err := s.repo.DeleteActivity(ctx, db, activityID); err != nil {
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete activity: %w", err)
		}
		return results.SuccessResult[bool, error](true), nil
	}

	_, err := unwrap(withTelemetry(s, ctx, "DeleteActivity", activityID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, deleteTx)
	}))
	return err
}

// ListActivities returns the activities the actor may view: the repository
// supplies the candidate set, the access evaluator makes the final call per
// row so listing and direct retrieval can never disagree.
func (s *ActivityService) ListActivities(ctx context.Context, actor activitydomain.AccountID) ([]activitydomain.Activity, error) {
	listTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[[]activitydomain.Activity, error], error) {
		rows, err := s.repo.ListActivitiesFor(ctx, db, actor)
		if err != nil {
			return results.OperationResult[[]activitydomain.Activity, error]{}, fmt.Errorf("failed to list activities: %w", err)
		}
		memberships, err := s.repo.ListParticipationsFor(ctx, db, actor)
		if err != nil {
			return results.OperationResult[[]activitydomain.Activity, error]{}, fmt.Errorf("failed to list participations: %w", err)
		}
		byActivity := make(map[uuid.UUID]*activitydb.Participant, len(memberships))
		for _, m := range memberships {
			byActivity[m.ActivityID] = m
		}

		activities := make([]activitydomain.Activity, 0, len(rows))
		for _, row := range rows {
			actorCtx := activitydomain.Actor{AccountID: actor}
			if m := byActivity[row.ID]; m != nil {
				actorCtx.Membership = &activitydomain.Membership{Role: m.Role, Status: m.Status}
			}
			activity := toDomainActivity(row)
			if !activitydomain.Can(actorCtx, activity, activitydomain.OpView) {
				continue
			}
			activities = append(activities, activity)
		}
		return results.SuccessResult[[]activitydomain.Activity, error](activities), nil
	}

	return unwrap(withTelemetry(s, ctx, "ListActivities", actor.String(), func(ctx context.Context) (results.OperationResult[[]activitydomain.Activity, error], error) {
		return runInTx(s, ctx, listTx)
	}))
}
