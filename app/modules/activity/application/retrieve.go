package activityservice

import (
	"context"
	"errors"
	"fmt"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	"github.com/fairway-collective/roundhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GetActivityDetail returns the activity with as much contribution data as
// the actor may see. Viewers holding contribution access get every header
// and record; unconfirmed headers are provisional, marked by their confirmed
// flag, not hidden. Everyone else who can view at all gets bare metadata.
func (s *ActivityService) GetActivityDetail(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) (*activitydomain.ActivityDetail, error) {
	getTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*activitydomain.ActivityDetail, error], error) {
		return s.getActivityDetailLogic(ctx, db, actor, activityID)
	}

	return unwrap(withTelemetry(s, ctx, "GetActivityDetail", activityID.String(), func(ctx context.Context) (results.OperationResult[*activitydomain.ActivityDetail, error], error) {
		return runInTx(s, ctx, getTx)
	}))
}

func (s *ActivityService) getActivityDetailLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, activityID uuid.UUID) (results.OperationResult[*activitydomain.ActivityDetail, error], error) {
	fail := results.FailureResult[*activitydomain.ActivityDetail, error]

	activity, actorCtx, _, err := s.getActivityFor(ctx, db, actor, activityID, activitydomain.OpView)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[*activitydomain.ActivityDetail, error]{}, err
	}

	detail := &activitydomain.ActivityDetail{Activity: toDomainActivity(activity)}

	participants, err := s.repo.ListParticipants(ctx, db, activityID)
	if err != nil {
		return results.OperationResult[*activitydomain.ActivityDetail, error]{}, fmt.Errorf("failed to list participants: %w", err)
	}
	for _, p := range participants {
		detail.Participants = append(detail.Participants, toDomainParticipant(p))
	}

	media, err := s.repo.ListMedia(ctx, db, activityID)
	if err != nil {
		return results.OperationResult[*activitydomain.ActivityDetail, error]{}, fmt.Errorf("failed to list media: %w", err)
	}
	for _, m := range media {
		detail.Media = append(detail.Media, toDomainMedia(m))
	}

	if activitydomain.Can(actorCtx, detail.Activity, activitydomain.OpViewContributions) {
		headers, err := s.repo.ListHeadersByActivity(ctx, db, activityID)
		if err != nil {
			return results.OperationResult[*activitydomain.ActivityDetail, error]{}, fmt.Errorf("failed to list headers: %w", err)
		}
		for _, h := range headers {
			detail.Headers = append(detail.Headers, toDomainHeader(h))
		}

		records, err := s.repo.ListDetailRecordsByActivity(ctx, db, activityID)
		if err != nil {
			return results.OperationResult[*activitydomain.ActivityDetail, error]{}, fmt.Errorf("failed to list detail records: %w", err)
		}
		detail.Records = toDomainRecords(records)
	}

	return results.SuccessResult[*activitydomain.ActivityDetail, error](detail), nil
}
