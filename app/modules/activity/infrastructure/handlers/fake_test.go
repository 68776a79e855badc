package activityhandlers

import (
	"context"

	activityservice "github.com/fairway-collective/roundhouse/app/modules/activity/application"
	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	"github.com/google/uuid"
)

// ------------------------
// Fake Activity Service
// ------------------------

type FakeService struct {
	CreateActivityFunc      func(ctx context.Context, actor activitydomain.AccountID, input activitydomain.CreateActivityInput) (*activitydomain.ActivityDetail, error)
	UpdateActivityFunc      func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.UpdateActivityInput) (*activitydomain.Activity, error)
	DeleteActivityFunc      func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) error
	ListActivitiesFunc      func(ctx context.Context, actor activitydomain.AccountID) ([]activitydomain.Activity, error)
	GetActivityDetailFunc   func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) (*activitydomain.ActivityDetail, error)
	AddParticipantsFunc     func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddParticipantsInput) ([]activitydomain.Participant, error)
	RemoveParticipantFunc   func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, accountID activitydomain.AccountID) error
	AttestFunc              func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, status activitydomain.AttestationStatus) (*activitydomain.Participant, error)
	WriteDetailRecordFunc   func(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID, input activitydomain.WriteDetailRecordInput) (*activitydomain.ContributionHeader, error)
	DeleteDetailRecordFunc  func(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID, ordinal int) (*activitydomain.ContributionHeader, error)
	ConfirmContributionFunc func(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID) error
	AddMediaFunc            func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddMediaInput) (*activitydomain.Media, error)
	RemoveMediaFunc         func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, mediaID uuid.UUID) error
	PublishFunc             func(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) (uuid.UUID, error)
}

func (f *FakeService) CreateActivity(ctx context.Context, actor activitydomain.AccountID, input activitydomain.CreateActivityInput) (*activitydomain.ActivityDetail, error) {
	if f.CreateActivityFunc != nil {
		return f.CreateActivityFunc(ctx, actor, input)
	}
	return &activitydomain.ActivityDetail{}, nil
}

func (f *FakeService) UpdateActivity(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.UpdateActivityInput) (*activitydomain.Activity, error) {
	if f.UpdateActivityFunc != nil {
		return f.UpdateActivityFunc(ctx, actor, activityID, input)
	}
	return &activitydomain.Activity{}, nil
}

func (f *FakeService) DeleteActivity(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) error {
	if f.DeleteActivityFunc != nil {
		return f.DeleteActivityFunc(ctx, actor, activityID)
	}
	return nil
}

func (f *FakeService) ListActivities(ctx context.Context, actor activitydomain.AccountID) ([]activitydomain.Activity, error) {
	if f.ListActivitiesFunc != nil {
		return f.ListActivitiesFunc(ctx, actor)
	}
	return nil, nil
}

func (f *FakeService) GetActivityDetail(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) (*activitydomain.ActivityDetail, error) {
	if f.GetActivityDetailFunc != nil {
		return f.GetActivityDetailFunc(ctx, actor, activityID)
	}
	return &activitydomain.ActivityDetail{}, nil
}

func (f *FakeService) AddParticipants(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddParticipantsInput) ([]activitydomain.Participant, error) {
	if f.AddParticipantsFunc != nil {
		return f.AddParticipantsFunc(ctx, actor, activityID, input)
	}
	return nil, nil
}

func (f *FakeService) RemoveParticipant(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, accountID activitydomain.AccountID) error {
	if f.RemoveParticipantFunc != nil {
		return f.RemoveParticipantFunc(ctx, actor, activityID, accountID)
	}
	return nil
}

func (f *FakeService) Attest(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, status activitydomain.AttestationStatus) (*activitydomain.Participant, error) {
	if f.AttestFunc != nil {
		return f.AttestFunc(ctx, actor, activityID, status)
	}
	return &activitydomain.Participant{}, nil
}

func (f *FakeService) WriteDetailRecord(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID, input activitydomain.WriteDetailRecordInput) (*activitydomain.ContributionHeader, error) {
	if f.WriteDetailRecordFunc != nil {
		return f.WriteDetailRecordFunc(ctx, actor, headerID, input)
	}
	return &activitydomain.ContributionHeader{}, nil
}

func (f *FakeService) DeleteDetailRecord(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID, ordinal int) (*activitydomain.ContributionHeader, error) {
	if f.DeleteDetailRecordFunc != nil {
		return f.DeleteDetailRecordFunc(ctx, actor, headerID, ordinal)
	}
	return &activitydomain.ContributionHeader{}, nil
}

func (f *FakeService) ConfirmContribution(ctx context.Context, actor activitydomain.AccountID, headerID uuid.UUID) error {
	if f.ConfirmContributionFunc != nil {
		return f.ConfirmContributionFunc(ctx, actor, headerID)
	}
	return nil
}

func (f *FakeService) AddMedia(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, input activitydomain.AddMediaInput) (*activitydomain.Media, error) {
	if f.AddMediaFunc != nil {
		return f.AddMediaFunc(ctx, actor, activityID, input)
	}
	return &activitydomain.Media{}, nil
}

func (f *FakeService) RemoveMedia(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID, mediaID uuid.UUID) error {
	if f.RemoveMediaFunc != nil {
		return f.RemoveMediaFunc(ctx, actor, activityID, mediaID)
	}
	return nil
}

func (f *FakeService) Publish(ctx context.Context, actor activitydomain.AccountID, activityID uuid.UUID) (uuid.UUID, error) {
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, actor, activityID)
	}
	return uuid.New(), nil
}

// Ensure the fake actually satisfies the interface
var _ activityservice.Service = (*FakeService)(nil)
