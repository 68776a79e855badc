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

// AddMedia attaches an opaque media reference to an activity. The blob
// itself lives elsewhere; only the URL is stored.
func (s *ActivityService) AddMedia(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddMediaInput) (*activitydomain.Media, error) {
	addTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitydomain.Media, error], error) {
		fail := results.FailureResult[*activitydomain.Media, error]

		if _, _, _, err := s.getActivityFor(ctx, db, actor, activityID, activitydomain.OpManageMedia); err != nil {
			if errors.Is(err, ErrAccessDenied) {
				return fail(err), nil
			}
			return results.OperationResult[*activitydomain.Media, error]{}, err
		}

		row := &activitydb.Media{
			ID:         uuid.New(),
			ActivityID: activityID,
			URL:        input.URL,
			MediaType:  input.MediaType,
			Position:   input.Position,
		}
		if err := s.repo.CreateMedia(ctx, db, row); err != nil {
			return results.OperationResult[*activitydomain.Media, error]{}, fmt.Errorf("failed to create media: %w", err)
		}

		media := toDomainMedia(row)
		return results.SuccessResult[*activitydomain.Media, error](&media), nil
	}

	return unwrap(withTelemetry(s, ctx, "AddMedia", activityID.String(), func(ctx context.Context) (results.OperationResult[*activitydomain.Media, error], error) {
		return runInTx(s, ctx, addTx)
	}))
}

// RemoveMedia detaches a media reference from an activity.
func (s *ActivityService) RemoveMedia(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, mediaID uuid.UUID) error {
	removeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		fail := results.FailureResult[bool, error]

		if _, _, _, err := s.getActivityFor(ctx, db, actor, activityID, activitydomain.OpManageMedia); err != nil {
			if errors.Is(err, ErrAccessDenied) {
				return fail(err), nil
			}
			return results.OperationResult[bool, error]{}, err
		}

		if err := s.repo.DeleteMedia(ctx, db, mediaID); err != nil {
			if errors.Is(err, activitydb.ErrNotFound) {
				return fail(ErrNotFound), nil
			}
			return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete media: %w", err)
		}
		return results.SuccessResult[bool, error](true), nil
	}

	_, err := unwrap(withTelemetry(s, ctx, "RemoveMedia", activityID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, removeTx)
	}))
	return err
}
