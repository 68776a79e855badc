package activityservice

import (
	"context"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	"github.com/google/uuid"
)

// Service is the activity module's application boundary. Every operation
// takes the acting account explicitly; there is no ambient identity.
type Service interface {
	CreateActivity(ctx context.Context, actor activitydomain.AccountID, input activitydomain.CreateActivityInput) (*activitydomain.ActivityDetail, error)
	UpdateActivity(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.UpdateActivityInput) (*activitydomain.Activity, error)
	DeleteActivity(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) error
	ListActivities(ctx context.Context, actor activitydomain.AccountID) ([]activitydomain.Activity, error)
	GetActivityDetail(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) (*activitydomain.ActivityDetail, error)

	AddParticipants(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddParticipantsInput) ([]activitydomain.Participant, error)
	RemoveParticipant(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, accountID activitydomain.AccountID) error
	Attest(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, status activitydomain.AttestationStatus) (*activitydomain.Participant, error)

	WriteDetailRecord(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID, input activitydomain.WriteDetailRecordInput) (*activitydomain.ContributionHeader, error)
	DeleteDetailRecord(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID, ordinal int) (*activitydomain.ContributionHeader, error)
	ConfirmContribution(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID) error

	AddMedia(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddMediaInput) (*activitydomain.Media, error)
	RemoveMedia(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, mediaID uuid.UUID) error

	Publish(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) (uuid.UUID, error)
}
