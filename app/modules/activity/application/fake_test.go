package activityservice

import (
	"context"

	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Activity Repo
// ------------------------

type FakeActivityRepo struct {
	trace []string

	CreateActivityFunc    func(ctx context.Context, db bun.IDB, activity *activitydb.Activity) error
	GetActivityFunc       func(ctx context.Context, db bun.IDB, activityID uuid.UUID) (*activitydb.Activity, error)
	UpdateActivityFunc    func(ctx context.Context, db bun.IDB, activity *activitydb.Activity) error
	DeleteActivityFunc    func(ctx context.Context, db bun.IDB, activityID uuid.UUID) error
	ListActivitiesForFunc func(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*activitydb.Activity, error)
	SetSummaryRefFunc     func(ctx context.Context, db bun.IDB, activityID, summaryRef uuid.UUID) error

	CreateParticipantFunc       func(ctx context.Context, db bun.IDB, participant *activitydb.Participant) error
	GetParticipantFunc          func(ctx context.Context, db bun.IDB, activityID, accountID uuid.UUID) (*activitydb.Participant, error)
	GetParticipantByIDFunc      func(ctx context.Context, db bun.IDB, participantID uuid.UUID) (*activitydb.Participant, error)
	ListParticipantsFunc        func(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*activitydb.Participant, error)
	ListParticipationsForFunc   func(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*activitydb.Participant, error)
	UpdateParticipantStatusFunc func(ctx context.Context, db bun.IDB, participant *activitydb.Participant) error
	MarkContributedFunc         func(ctx context.Context, db bun.IDB, participantID uuid.UUID) error
	DeleteParticipantFunc       func(ctx context.Context, db bun.IDB, participantID uuid.UUID) error

	CreateHeaderFunc          func(ctx context.Context, db bun.IDB, header *activitydb.ContributionHeader) error
	GetHeaderFunc             func(ctx context.Context, db bun.IDB, headerID uuid.UUID) (*activitydb.ContributionHeader, error)
	GetHeaderByParticipantFunc func(ctx context.Context, db bun.IDB, participantID uuid.UUID) (*activitydb.ContributionHeader, error)
	ListHeadersByActivityFunc  func(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*activitydb.ContributionHeader, error)
	LockHeaderFunc            func(ctx context.Context, db bun.IDB, headerID uuid.UUID) (*activitydb.ContributionHeader, error)
	UpdateHeaderTotalsFunc    func(ctx context.Context, db bun.IDB, headerID uuid.UUID, total, unitsCompleted int, delta *int) error
	ConfirmHeaderFunc         func(ctx context.Context, db bun.IDB, headerID uuid.UUID) error

	UpsertDetailRecordFunc          func(ctx context.Context, db bun.IDB, record *activitydb.DetailRecord) error
	DeleteDetailRecordFunc          func(ctx context.Context, db bun.IDB, headerID uuid.UUID, ordinal int) error
	ListDetailRecordsFunc           func(ctx context.Context, db bun.IDB, headerID uuid.UUID) ([]*activitydb.DetailRecord, error)
	ListDetailRecordsByActivityFunc func(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*activitydb.DetailRecord, error)

	CreateMediaFunc func(ctx context.Context, db bun.IDB, media *activitydb.Media) error
	DeleteMediaFunc func(ctx context.Context, db bun.IDB, mediaID uuid.UUID) error
	ListMediaFunc   func(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*activitydb.Media, error)

	UpsertFeedSummaryFunc func(ctx context.Context, db bun.IDB, summary *activitydb.FeedSummary) error
	GetFeedSummaryFunc    func(ctx context.Context, db bun.IDB, activityID uuid.UUID) (*activitydb.FeedSummary, error)
}

func NewFakeActivityRepo() *FakeActivityRepo {
	return &FakeActivityRepo{trace: []string{}}
}

func (f *FakeActivityRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeActivityRepo) CreateActivity(ctx context.Context, db bun.IDB, activity *activitydb.Activity) error {
	f.record("CreateActivity")
	if f.CreateActivityFunc != nil {
		return f.CreateActivityFunc(ctx, db, activity)
	}
	return nil
}

func (f *FakeActivityRepo) GetActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) (*activitydb.Activity, error) {
	f.record("GetActivity")
	if f.GetActivityFunc != nil {
		return f.GetActivityFunc(ctx, db, activityID)
	}
	return nil, activitydb.ErrNotFound
}

func (f *FakeActivityRepo) UpdateActivity(ctx context.Context, db bun.IDB, activity *activitydb.Activity) error {
	f.record("UpdateActivity")
	if f.UpdateActivityFunc != nil {
		return f.UpdateActivityFunc(ctx, db, activity)
	}
	return nil
}

func (f *FakeActivityRepo) DeleteActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) error {
	f.record("DeleteActivity")
	if f.DeleteActivityFunc != nil {
		return f.DeleteActivityFunc(ctx, db, activityID)
	}
	return nil
}

func (f *FakeActivityRepo) ListActivitiesFor(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*activitydb.Activity, error) {
	f.record("ListActivitiesFor")
	if f.ListActivitiesForFunc != nil {
		return f.ListActivitiesForFunc(ctx, db, accountID)
	}
	return nil, nil
}

func (f *FakeActivityRepo) SetSummaryRef(ctx context.Context, db bun.IDB, activityID, summaryRef uuid.UUID) error {
	f.record("SetSummaryRef")
	if f.SetSummaryRefFunc != nil {
		return f.SetSummaryRefFunc(ctx, db, activityID, summaryRef)
	}
	return nil
}

func (f *FakeActivityRepo) CreateParticipant(ctx context.Context, db bun.IDB, participant *activitydb.Participant) error {
	f.record("CreateParticipant")
	if f.CreateParticipantFunc != nil {
		return f.CreateParticipantFunc(ctx, db, participant)
	}
	return nil
}

func (f *FakeActivityRepo) GetParticipant(ctx context.Context, db bun.IDB, activityID, accountID uuid.UUID) (*activitydb.Participant, error) {
	f.record("GetParticipant")
	if f.GetParticipantFunc != nil {
		return f.GetParticipantFunc(ctx, db, activityID, accountID)
	}
	return nil, activitydb.ErrNotFound
}

func (f *FakeActivityRepo) GetParticipantByID(ctx context.Context, db bun.IDB, participantID uuid.UUID) (*activitydb.Participant, error) {
	f.record("GetParticipantByID")
	if f.GetParticipantByIDFunc != nil {
		return f.GetParticipantByIDFunc(ctx, db, participantID)
	}
	return nil, activitydb.ErrNotFound
}

func (f *FakeActivityRepo) ListParticipants(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*activitydb.Participant, error) {
	f.record("ListParticipants")
	if f.ListParticipantsFunc != nil {
		return f.ListParticipantsFunc(ctx, db, activityID)
	}
	return nil, nil
}

func (f *FakeActivityRepo) ListParticipationsFor(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*activitydb.Participant, error) {
	f.record("ListParticipationsFor")
	if f.ListParticipationsForFunc != nil {
		return f.ListParticipationsForFunc(ctx, db, accountID)
	}
	return nil, nil
}

func (f *FakeActivityRepo) UpdateParticipantStatus(ctx context.Context, db bun.IDB, participant *activitydb.Participant) error {
	f.record("UpdateParticipantStatus")
	if f.UpdateParticipantStatusFunc != nil {
		return f.UpdateParticipantStatusFunc(ctx, db, participant)
	}
	return nil
}

func (f *FakeActivityRepo) MarkContributed(ctx context.Context, db bun.IDB, participantID uuid.UUID) error {
	f.record("MarkContributed")
	if f.MarkContributedFunc != nil {
		return f.MarkContributedFunc(ctx, db, participantID)
	}
	return nil
}

func (f *FakeActivityRepo) DeleteParticipant(ctx context.Context, db bun.IDB, participantID uuid.UUID) error {
	f.record("DeleteParticipant")
	if f.DeleteParticipantFunc != nil {
		return f.DeleteParticipantFunc(ctx, db, participantID)
	}
	return nil
}

func (f *FakeActivityRepo) CreateHeader(ctx context.Context, db bun.IDB, header *activitydb.ContributionHeader) error {
	f.record("CreateHeader")
	if f.CreateHeaderFunc != nil {
		return f.CreateHeaderFunc(ctx, db, header)
	}
	return nil
}

func (f *FakeActivityRepo) GetHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) (*activitydb.ContributionHeader, error) {
	f.record("GetHeader")
	if f.GetHeaderFunc != nil {
		return f.GetHeaderFunc(ctx, db, headerID)
	}
	return nil, activitydb.ErrNotFound
}

func (f *FakeActivityRepo) GetHeaderByParticipant(ctx context.Context, db bun.IDB, participantID uuid.UUID) (*activitydb.ContributionHeader, error) {
	f.record("GetHeaderByParticipant")
	if f.GetHeaderByParticipantFunc != nil {
		return f.GetHeaderByParticipantFunc(ctx, db, participantID)
	}
	return nil, activitydb.ErrNotFound
}

func (f *FakeActivityRepo) ListHeadersByActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*activitydb.ContributionHeader, error) {
	f.record("ListHeadersByActivity")
	if f.ListHeadersByActivityFunc != nil {
		return f.ListHeadersByActivityFunc(ctx, db, activityID)
	}
	return nil, nil
}

func (f *FakeActivityRepo) LockHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) (*activitydb.ContributionHeader, error) {
	f.record("LockHeader")
	if f.LockHeaderFunc != nil {
		return f.LockHeaderFunc(ctx, db, headerID)
	}
	return nil, activitydb.ErrNotFound
}

func (f *FakeActivityRepo) UpdateHeaderTotals(ctx context.Context, db bun.IDB, headerID uuid.UUID, total, unitsCompleted int, delta *int) error {
	f.record("UpdateHeaderTotals")
	if f.UpdateHeaderTotalsFunc != nil {
		return f.UpdateHeaderTotalsFunc(ctx, db, headerID, total, unitsCompleted, delta)
	}
	return nil
}

func (f *FakeActivityRepo) ConfirmHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) error {
	f.record("ConfirmHeader")
	if f.ConfirmHeaderFunc != nil {
		return f.ConfirmHeaderFunc(ctx, db, headerID)
	}
	return nil
}

func (f *FakeActivityRepo) UpsertDetailRecord(ctx context.Context, db bun.IDB, record *activitydb.DetailRecord) error {
	f.record("UpsertDetailRecord")
	if f.UpsertDetailRecordFunc != nil {
		return f.UpsertDetailRecordFunc(ctx, db, record)
	}
	return nil
}

func (f *FakeActivityRepo) DeleteDetailRecord(ctx context.Context, db bun.IDB, headerID uuid.UUID, ordinal int) error {
	f.record("DeleteDetailRecord")
	if f.DeleteDetailRecordFunc != nil {
		return f.DeleteDetailRecordFunc(ctx, db, headerID, ordinal)
	}
	return nil
}

func (f *FakeActivityRepo) ListDetailRecords(ctx context.Context, db bun.IDB, headerID uuid.UUID) ([]*activitydb.DetailRecord, error) {
	f.record("ListDetailRecords")
	if f.ListDetailRecordsFunc != nil {
		return f.ListDetailRecordsFunc(ctx, db, headerID)
	}
	return nil, nil
}

func (f *FakeActivityRepo) ListDetailRecordsByActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*activitydb.DetailRecord, error) {
	f.record("ListDetailRecordsByActivity")
	if f.ListDetailRecordsByActivityFunc != nil {
		return f.ListDetailRecordsByActivityFunc(ctx, db, activityID)
	}
	return nil, nil
}

func (f *FakeActivityRepo) CreateMedia(ctx context.Context, db bun.IDB, media *activitydb.Media) error {
	f.record("CreateMedia")
	if f.CreateMediaFunc != nil {
		return f.CreateMediaFunc(ctx, db, media)
	}
	return nil
}

func (f *FakeActivityRepo) DeleteMedia(ctx context.Context, db bun.IDB, mediaID uuid.UUID) error {
	f.record("DeleteMedia")
	if f.DeleteMediaFunc != nil {
		return f.DeleteMediaFunc(ctx, db, mediaID)
	}
	return nil
}

func (f *FakeActivityRepo) ListMedia(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*activitydb.Media, error) {
	f.record("ListMedia")
	if f.ListMediaFunc != nil {
		return f.ListMediaFunc(ctx, db, activityID)
	}
	return nil, nil
}

func (f *FakeActivityRepo) UpsertFeedSummary(ctx context.Context, db bun.IDB, summary *activitydb.FeedSummary) error {
	f.record("UpsertFeedSummary")
	if f.UpsertFeedSummaryFunc != nil {
		return f.UpsertFeedSummaryFunc(ctx, db, summary)
	}
	return nil
}

func (f *FakeActivityRepo) GetFeedSummary(ctx context.Context, db bun.IDB, activityID uuid.UUID) (*activitydb.FeedSummary, error) {
	f.record("GetFeedSummary")
	if f.GetFeedSummaryFunc != nil {
		return f.GetFeedSummaryFunc(ctx, db, activityID)
	}
	return nil, activitydb.ErrNotFound
}

// --- Accessors for assertions ---

func (f *FakeActivityRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ activitydb.Repository = (*FakeActivityRepo)(nil)

// ------------------------
// Fake Summary Publisher
// ------------------------

type FakeSummaryPublisher struct {
	Published          []SummarySnapshot
	PublishSummaryFunc func(ctx context.Context, snapshot SummarySnapshot) error
}

func (f *FakeSummaryPublisher) PublishSummary(ctx context.Context, snapshot SummarySnapshot) error {
	f.Published = append(f.Published, snapshot)
	if f.PublishSummaryFunc != nil {
		return f.PublishSummaryFunc(ctx, snapshot)
	}
	return nil
}

var _ SummaryPublisher = (*FakeSummaryPublisher)(nil)
