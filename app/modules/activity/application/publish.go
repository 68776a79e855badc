package activityservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
	"github.com/fairway-collective/roundhouse/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Publish materializes a read-only feed summary for an activity and hands it
// to the publication bridge. The summary carries the roster and confirmed
// totals only; provisional data never leaves the subsystem. Republishing
// reuses the existing summary reference.
func (s *ActivityService) Publish(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) (uuid.UUID, error) {
	publishTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*SummarySnapshot, error], error) {
		return s.publishLogic(ctx, db, actor, activityID)
	}

	snapshot, err := unwrap(withTelemetry(s, ctx, "Publish", activityID.String(), func(ctx context.Context) (results.OperationResult[*SummarySnapshot, error], error) {
		return runInTx(s, ctx, publishTx)
	}))
	if err != nil {
		return uuid.Nil, err
	}

	// The bridge publish happens after commit; the summary row is already
	// durable, so a lost event can be replayed by publishing again.
	if s.publisher != nil {
		if err := s.publisher.PublishSummary(ctx, *snapshot); err != nil {
			s.logger.ErrorContext(ctx, "Failed to publish feed summary event",
				"activity_id", activityID.String(),
				"summary_ref", snapshot.SummaryRef.String(),
				"error", err,
			)
		}
	}

	return snapshot.SummaryRef, nil
}

func (s *ActivityService) publishLogic(ctx context.Context, db bun.IDB, actor activitydomain.AccountID, activityID uuid.UUID) (results.OperationResult[*SummarySnapshot, error], error) {
	fail := results.FailureResult[*SummarySnapshot, error]

	activity, _, _, err := s.getActivityFor(ctx, db, actor, activityID, activitydomain.OpPublish)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			return fail(err), nil
		}
		return results.OperationResult[*SummarySnapshot, error]{}, err
	}

	if !activity.Status.IsPublishable() {
		return fail(fmt.Errorf("%w: status %s", ErrActivityNotPublishable, activity.Status)), nil
	}

	// Reuse the reference from an earlier publish so feed consumers hold a
	// stable handle across republishes.
	summaryRef := uuid.New()
	if existing, err := s.repo.GetFeedSummary(ctx, db, activityID); err == nil {
		summaryRef = existing.SummaryRef
	} else if !errors.Is(err, activitydb.ErrNotFound) {
		return results.OperationResult[*SummarySnapshot, error]{}, fmt.Errorf("failed to load existing feed summary: %w", err)
	}

	snapshot, err := s.buildSnapshot(ctx, db, activity, summaryRef)
	if err != nil {
		return results.OperationResult[*SummarySnapshot, error]{}, err
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return results.OperationResult[*SummarySnapshot, error]{}, fmt.Errorf("failed to encode summary snapshot: %w", err)
	}

	if err := s.repo.UpsertFeedSummary(ctx, db, &activitydb.FeedSummary{
		ActivityID:  activityID,
		SummaryRef:  summaryRef,
		Snapshot:    raw,
		PublishedAt: snapshot.PublishedAt,
	}); err != nil {
		return results.OperationResult[*SummarySnapshot, error]{}, fmt.Errorf("failed to upsert feed summary: %w", err)
	}

	if err := s.repo.SetSummaryRef(ctx, db, activityID, summaryRef); err != nil {
		return results.OperationResult[*SummarySnapshot, error]{}, fmt.Errorf("failed to set summary ref: %w", err)
	}

	return results.SuccessResult[*SummarySnapshot, error](&snapshot), nil
}

// buildSnapshot assembles the read-only view the feed collaborator resolves:
// the roster with totals for confirmed headers only.
func (s *ActivityService) buildSnapshot(ctx context.Context, db bun.IDB, activity *activitydb.Activity, summaryRef uuid.UUID) (SummarySnapshot, error) {
	participants, err := s.repo.ListParticipants(ctx, db, activity.ID)
	if err != nil {
		return SummarySnapshot{}, fmt.Errorf("failed to list participants: %w", err)
	}

	headers, err := s.repo.ListHeadersByActivity(ctx, db, activity.ID)
	if err != nil {
		return SummarySnapshot{}, fmt.Errorf("failed to list headers: %w", err)
	}
	confirmed := make(map[uuid.UUID]*activitydb.ContributionHeader, len(headers))
	for _, h := range headers {
		if h.Confirmed {
			confirmed[h.ParticipantID] = h
		}
	}

	snapshot := SummarySnapshot{
		SummaryRef:  summaryRef,
		ActivityID:  activity.ID,
		Title:       activity.Title,
		Type:        string(activity.Type),
		Date:        activity.Date,
		Location:    activity.Location,
		PublishedAt: time.Now(),
	}
	for _, p := range participants {
		entry := SummaryEntry{
			AccountID: p.AccountID,
			Role:      string(p.Role),
		}
		if h, ok := confirmed[p.ID]; ok {
			entry.Total = &h.Total
			entry.UnitsCompleted = &h.UnitsCompleted
			entry.Delta = h.Delta
		}
		snapshot.Roster = append(snapshot.Roster, entry)
	}

	return snapshot, nil
}
