package activityservice

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	activitydb "github.com/fairway-collective/roundhouse/app/modules/activity/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

// scoringFixture wires a fake repo around one activity, one confirmed
// participant, and their contribution header, with detail records held in a
// mutable slice so writes and deletes behave like real storage.
type scoringFixture struct {
	repo *FakeActivityRepo

	creator     uuid.UUID
	participant uuid.UUID
	activityID  uuid.UUID
	headerID    uuid.UUID

	participantRow *activitydb.Participant
	header         *activitydb.ContributionHeader
	records        []*activitydb.DetailRecord
}

func newScoringFixture() *scoringFixture {
	f := &scoringFixture{
		repo:        NewFakeActivityRepo(),
		creator:     uuid.New(),
		participant: uuid.New(),
		activityID:  uuid.New(),
		headerID:    uuid.New(),
	}

	participantID := uuid.New()
	f.participantRow = &activitydb.Participant{
		ID:         participantID,
		ActivityID: f.activityID,
		AccountID:  f.participant,
		Role:       activitydomain.RoleParticipant,
		Status:     activitydomain.AttestationConfirmed,
	}
	f.header = &activitydb.ContributionHeader{
		ID:            f.headerID,
		ParticipantID: participantID,
		EnteredBy:     f.participant,
	}

	f.repo.GetActivityFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*activitydb.Activity, error) {
		return &activitydb.Activity{
			ID: f.activityID, CreatedBy: f.creator,
			Type:       activitydomain.ActivityTypeScoredRound,
			Visibility: activitydomain.VisibilityPublic,
		}, nil
	}
	f.repo.GetParticipantFunc = func(ctx context.Context, db bun.IDB, aID, accountID uuid.UUID) (*activitydb.Participant, error) {
		if accountID == f.participant {
			return f.participantRow, nil
		}
		return nil, activitydb.ErrNotFound
	}
	f.repo.GetParticipantByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*activitydb.Participant, error) {
		if id == participantID {
			return f.participantRow, nil
		}
		return nil, activitydb.ErrNotFound
	}
	f.repo.GetHeaderFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*activitydb.ContributionHeader, error) {
		if id == f.headerID {
			return f.header, nil
		}
		return nil, activitydb.ErrNotFound
	}
	f.repo.LockHeaderFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*activitydb.ContributionHeader, error) {
		if id == f.headerID {
			return f.header, nil
		}
		return nil, activitydb.ErrNotFound
	}
	f.repo.ListDetailRecordsFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) ([]*activitydb.DetailRecord, error) {
		out := make([]*activitydb.DetailRecord, len(f.records))
		copy(out, f.records)
		return out, nil
	}
	f.repo.UpsertDetailRecordFunc = func(ctx context.Context, db bun.IDB, record *activitydb.DetailRecord) error {
		for i, existing := range f.records {
			if existing.Ordinal == record.Ordinal {
				f.records[i] = record
				return nil
			}
		}
		f.records = append(f.records, record)
		return nil
	}
	f.repo.DeleteDetailRecordFunc = func(ctx context.Context, db bun.IDB, headerID uuid.UUID, ordinal int) error {
		for i, existing := range f.records {
			if existing.Ordinal == ordinal {
				f.records = append(f.records[:i], f.records[i+1:]...)
				return nil
			}
		}
		return activitydb.ErrNotFound
	}
	f.repo.UpdateHeaderTotalsFunc = func(ctx context.Context, db bun.IDB, headerID uuid.UUID, total, units int, delta *int) error {
		f.header.Total = total
		f.header.UnitsCompleted = units
		f.header.Delta = delta
		return nil
	}
	f.repo.MarkContributedFunc = func(ctx context.Context, db bun.IDB, participantID uuid.UUID) error {
		f.participantRow.HasContributed = true
		return nil
	}

	return f
}

func (f *scoringFixture) write(t *testing.T, svc *ActivityService, actor uuid.UUID, ordinal, primary int) (*activitydomain.ContributionHeader, error) {
	t.Helper()
	return svc.WriteDetailRecord(context.Background(), actor, f.headerID, activitydomain.WriteDetailRecordInput{
		Ordinal:      ordinal,
		PrimaryCount: primary,
	})
}

func TestWriteDetailRecord(t *testing.T) {
	t.Run("totals track every write and amendment", func(t *testing.T) {
		f := newScoringFixture()
		svc := newTestService(f.repo, nil)

		header, err := f.write(t, svc, f.participant, 1, 5)
		assert.NoError(t, err)
		assert.Equal(t, 5, header.Total)
		assert.Equal(t, 1, header.UnitsCompleted)

		header, err = f.write(t, svc, f.participant, 2, 4)
		assert.NoError(t, err)
		assert.Equal(t, 9, header.Total)
		assert.Equal(t, 2, header.UnitsCompleted)

		// Amending ordinal 1 replaces, never double counts.
		header, err = f.write(t, svc, f.participant, 1, 3)
		assert.NoError(t, err)
		assert.Equal(t, 7, header.Total)
		assert.Equal(t, 2, header.UnitsCompleted)
	})

	t.Run("bound violation leaves totals untouched", func(t *testing.T) {
		f := newScoringFixture()
		svc := newTestService(f.repo, nil)

		_, err := f.write(t, svc, f.participant, 1, 5)
		assert.NoError(t, err)

		six := 6
		_, err = svc.WriteDetailRecord(context.Background(), f.participant, f.headerID, activitydomain.WriteDetailRecordInput{
			Ordinal:        2,
			PrimaryCount:   4,
			SecondaryCount: &six,
		})

		assert.ErrorIs(t, err, ErrInvalidDetailRecord)
		assert.Equal(t, 5, f.header.Total)
		assert.Equal(t, 1, f.header.UnitsCompleted)
		assert.Len(t, f.records, 1)
	})

	t.Run("ordinal past unit count rejected", func(t *testing.T) {
		f := newScoringFixture()
		svc := newTestService(f.repo, nil)

		_, err := f.write(t, svc, f.participant, 10, 4)

		assert.ErrorIs(t, err, ErrInvalidDetailRecord)
		assert.Empty(t, f.records)
	})

	t.Run("sticky has_contributed", func(t *testing.T) {
		f := newScoringFixture()
		svc := newTestService(f.repo, nil)

		_, err := f.write(t, svc, f.participant, 1, 4)
		assert.NoError(t, err)
		assert.True(t, f.participantRow.HasContributed)

		// Deleting the last record empties the header but the flag stays.
		header, err := svc.DeleteDetailRecord(context.Background(), f.participant, f.headerID, 1)
		assert.NoError(t, err)
		assert.Equal(t, 0, header.UnitsCompleted)
		assert.Nil(t, header.Delta)
		assert.True(t, f.participantRow.HasContributed)
	})

	t.Run("creator prefills on participant's behalf", func(t *testing.T) {
		f := newScoringFixture()
		svc := newTestService(f.repo, nil)

		header, err := f.write(t, svc, f.creator, 1, 4)

		assert.NoError(t, err)
		assert.Equal(t, 4, header.Total)
		assert.Equal(t, f.creator, f.records[0].EnteredBy)
	})

	t.Run("other participants cannot prefill", func(t *testing.T) {
		f := newScoringFixture()
		svc := newTestService(f.repo, nil)

		_, err := f.write(t, svc, uuid.New(), 1, 4)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, f.records)
	})

	t.Run("held lock surfaces as contention", func(t *testing.T) {
		f := newScoringFixture()
		f.repo.LockHeaderFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*activitydb.ContributionHeader, error) {
			return nil, activitydb.ErrLockNotAvailable
		}
		svc := newTestService(f.repo, nil)

		_, err := f.write(t, svc, f.participant, 1, 4)

		assert.ErrorIs(t, err, ErrContention)
	})

	t.Run("social events accept no detail records", func(t *testing.T) {
		f := newScoringFixture()
		f.repo.GetActivityFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*activitydb.Activity, error) {
			return &activitydb.Activity{
				ID: f.activityID, CreatedBy: f.creator,
				Type:       activitydomain.ActivityTypeSocialEvent,
				Visibility: activitydomain.VisibilityPublic,
			}, nil
		}
		svc := newTestService(f.repo, nil)

		_, err := f.write(t, svc, f.participant, 1, 4)

		assert.ErrorIs(t, err, ErrInvalidDetailRecord)
	})

	t.Run("tampered totals detected before writing", func(t *testing.T) {
		f := newScoringFixture()
		f.header.Total = 99 // does not match the (empty) record set
		svc := newTestService(f.repo, nil)

		_, err := f.write(t, svc, f.participant, 1, 4)

		assert.ErrorIs(t, err, ErrInvariantViolation)
		assert.Empty(t, f.records)
	})
}

// TestTotalsConvergeUnderInterleavedEdits drives a long randomized sequence
// of writes, amendments, and deletes, interleaving the participant and the
// prefilling creator, and checks after every settled operation that the
// stored header equals a fresh recompute of the surviving records. The seed
// is fixed so any failure replays deterministically.
func TestTotalsConvergeUnderInterleavedEdits(t *testing.T) {
	f := newScoringFixture()
	svc := newTestService(f.repo, nil)

	rng := rand.New(rand.NewSource(1))
	writers := []uuid.UUID{f.participant, f.creator}
	expected := map[int]int{} // ordinal -> primary of the surviving records

	checkSettled := func(header *activitydomain.ContributionHeader) {
		t.Helper()
		wantTotal := 0
		for _, primary := range expected {
			wantTotal += primary
		}
		assert.Equal(t, wantTotal, header.Total)
		assert.Equal(t, len(expected), header.UnitsCompleted)
		if len(expected) == 0 {
			assert.Nil(t, header.Delta)
		} else if assert.NotNil(t, header.Delta) {
			assert.Equal(t, wantTotal-3*len(expected), *header.Delta)
		}
		// The returned header and the stored row must agree.
		assert.Equal(t, header.Total, f.header.Total)
		assert.Equal(t, header.UnitsCompleted, f.header.UnitsCompleted)
		assert.Len(t, f.records, len(expected))
	}

	for i := 0; i < 400; i++ {
		actor := writers[rng.Intn(len(writers))]

		if len(expected) > 0 && rng.Intn(4) == 0 {
			ordinals := make([]int, 0, len(expected))
			for ordinal := range expected {
				ordinals = append(ordinals, ordinal)
			}
			sort.Ints(ordinals)
			ordinal := ordinals[rng.Intn(len(ordinals))]

			header, err := svc.DeleteDetailRecord(context.Background(), actor, f.headerID, ordinal)
			assert.NoError(t, err)
			delete(expected, ordinal)
			checkSettled(header)
			continue
		}

		ordinal := 1 + rng.Intn(9)
		primary := 1 + rng.Intn(12)
		header, err := f.write(t, svc, actor, ordinal, primary)
		assert.NoError(t, err)
		expected[ordinal] = primary
		checkSettled(header)
	}
}

// TestScoredRoundLifecycle walks the canonical flow: the creator prefills a
// full nine-unit round, the participant trims one unit and then confirms.
func TestScoredRoundLifecycle(t *testing.T) {
	f := newScoringFixture()
	confirmed := false
	f.repo.ConfirmHeaderFunc = func(ctx context.Context, db bun.IDB, headerID uuid.UUID) error {
		confirmed = true
		f.header.Confirmed = true
		return nil
	}
	svc := newTestService(f.repo, nil)

	values := []int{5, 4, 6, 5, 4, 5, 6, 4, 5}
	var header *activitydomain.ContributionHeader
	var err error
	for i, v := range values {
		header, err = f.write(t, svc, f.creator, i+1, v)
		assert.NoError(t, err)
	}
	assert.Equal(t, 44, header.Total)
	assert.Equal(t, 9, header.UnitsCompleted)

	header, err = svc.DeleteDetailRecord(context.Background(), f.participant, f.headerID, 3)
	assert.NoError(t, err)
	assert.Equal(t, 38, header.Total)
	assert.Equal(t, 8, header.UnitsCompleted)

	err = svc.ConfirmContribution(context.Background(), f.participant, f.headerID)
	assert.NoError(t, err)
	assert.True(t, confirmed)

	// Confirmation never touches the totals.
	assert.Equal(t, 38, f.header.Total)
	assert.Equal(t, 8, f.header.UnitsCompleted)
	assert.True(t, f.participantRow.HasContributed)
}

func TestConfirmContribution(t *testing.T) {
	t.Run("only the owner confirms", func(t *testing.T) {
		f := newScoringFixture()
		svc := newTestService(f.repo, nil)

		err := svc.ConfirmContribution(context.Background(), f.creator, f.headerID)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.NotContains(t, f.repo.Trace(), "ConfirmHeader")
	})

	t.Run("confirming twice is a no-op", func(t *testing.T) {
		f := newScoringFixture()
		f.header.Confirmed = true
		svc := newTestService(f.repo, nil)

		err := svc.ConfirmContribution(context.Background(), f.participant, f.headerID)

		assert.NoError(t, err)
		assert.NotContains(t, f.repo.Trace(), "ConfirmHeader")
	})
}
