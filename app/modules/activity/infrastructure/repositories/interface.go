package activitydb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for activity persistence. Every method
// takes a bun.IDB so services can run several calls in one transaction.
type Repository interface {
	// Activities
	CreateActivity(ctx context.Context, db bun.IDB, activity *Activity) error
	GetActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) (*Activity, error)
	UpdateActivity(ctx context.Context, db bun.IDB, activity *Activity) error
	DeleteActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) error
	ListActivitiesFor(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*Activity, error)
	SetSummaryRef(ctx context.Context, db bun.IDB, activityID, summaryRef uuid.UUID) error

	// Participants
	CreateParticipant(ctx context.Context, db bun.IDB, participant *Participant) error
	GetParticipant(ctx context.Context, db bun.IDB, activityID, accountID uuid.UUID) (*Participant, error)
	GetParticipantByID(ctx context.Context, db bun.IDB, participantID uuid.UUID) (*Participant, error)
	ListParticipants(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*Participant, error)
	ListParticipationsFor(ctx context.Context, db bun.IDB, accountID uuid.UUID) ([]*Participant, error)
	UpdateParticipantStatus(ctx context.Context, db bun.IDB, participant *Participant) error
	MarkContributed(ctx context.Context, db bun.IDB, participantID uuid.UUID) error
	DeleteParticipant(ctx context.Context, db bun.IDB, participantID uuid.UUID) error

	// Contribution headers
	CreateHeader(ctx context.Context, db bun.IDB, header *ContributionHeader) error
	GetHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) (*ContributionHeader, error)
	GetHeaderByParticipant(ctx context.Context, db bun.IDB, participantID uuid.UUID) (*ContributionHeader, error)
	ListHeadersByActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*ContributionHeader, error)
	// LockHeader acquires an exclusive row lock (NOWAIT) on the header so the
	// detail write + recompute serialize per header. Returns
	// ErrLockNotAvailable when another writer holds the lock.
	LockHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) (*ContributionHeader, error)
	UpdateHeaderTotals(ctx context.Context, db bun.IDB, headerID uuid.UUID, total, unitsCompleted int, delta *int) error
	ConfirmHeader(ctx context.Context, db bun.IDB, headerID uuid.UUID) error

	// Detail records
	UpsertDetailRecord(ctx context.Context, db bun.IDB, record *DetailRecord) error
	DeleteDetailRecord(ctx context.Context, db bun.IDB, headerID uuid.UUID, ordinal int) error
	ListDetailRecords(ctx context.Context, db bun.IDB, headerID uuid.UUID) ([]*DetailRecord, error)
	ListDetailRecordsByActivity(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*DetailRecord, error)

	// Media references
	CreateMedia(ctx context.Context, db bun.IDB, media *Media) error
	DeleteMedia(ctx context.Context, db bun.IDB, mediaID uuid.UUID) error
	ListMedia(ctx context.Context, db bun.IDB, activityID uuid.UUID) ([]*Media, error)

	// Feed summaries
	UpsertFeedSummary(ctx context.Context, db bun.IDB, summary *FeedSummary) error
	GetFeedSummary(ctx context.Context, db bun.IDB, activityID uuid.UUID) (*FeedSummary, error)
}
