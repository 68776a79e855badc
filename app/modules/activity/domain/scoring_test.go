package activitydomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesFor(t *testing.T) {
	tests := []struct {
		name         string
		activityType ActivityType
		wantOK       bool
		wantUnits    int
	}{
		{name: "scored round has nine units", activityType: ActivityTypeScoredRound, wantOK: true, wantUnits: 9},
		{name: "team match has eighteen units", activityType: ActivityTypeTeamMatch, wantOK: true, wantUnits: 18},
		{name: "social event has no scoring", activityType: ActivityTypeSocialEvent, wantOK: false},
		{name: "unknown type has no scoring", activityType: ActivityType("karaoke"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, ok := RulesFor(tt.activityType)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantUnits, rules.Units)
			}
		})
	}
}

func TestValidateMeasures(t *testing.T) {
	rules, _ := RulesFor(ActivityTypeScoredRound)

	three := 3
	six := 6
	negative := -1

	tests := []struct {
		name      string
		ordinal   int
		primary   int
		secondary *int
		wantErr   error
	}{
		{name: "valid without secondary", ordinal: 1, primary: 4},
		{name: "valid with secondary", ordinal: 9, primary: 5, secondary: &three},
		{name: "secondary equal to primary", ordinal: 5, primary: 3, secondary: &three},
		{name: "ordinal zero", ordinal: 0, primary: 4, wantErr: ErrOrdinalOutOfRange},
		{name: "ordinal past unit count", ordinal: 10, primary: 4, wantErr: ErrOrdinalOutOfRange},
		{name: "primary zero", ordinal: 1, primary: 0, wantErr: ErrPrimaryOutOfRange},
		{name: "primary above ceiling", ordinal: 1, primary: 13, wantErr: ErrPrimaryOutOfRange},
		{name: "secondary exceeds primary", ordinal: 1, primary: 4, secondary: &six, wantErr: ErrSecondaryExceedsPrimary},
		{name: "negative secondary", ordinal: 1, primary: 4, secondary: &negative, wantErr: ErrSecondaryExceedsPrimary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.ValidateMeasures(tt.ordinal, tt.primary, tt.secondary)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecomputeTotals(t *testing.T) {
	rules, _ := RulesFor(ActivityTypeScoredRound)

	t.Run("empty record set has nil delta", func(t *testing.T) {
		totals := RecomputeTotals(nil, rules)
		assert.Equal(t, 0, totals.Total)
		assert.Equal(t, 0, totals.UnitsCompleted)
		assert.Nil(t, totals.Delta, "no data must be distinct from on target")
	})

	t.Run("single on-target unit has zero delta", func(t *testing.T) {
		totals := RecomputeTotals([]DetailRecord{{Ordinal: 1, PrimaryCount: 3}}, rules)
		assert.Equal(t, 3, totals.Total)
		assert.Equal(t, 1, totals.UnitsCompleted)
		if assert.NotNil(t, totals.Delta) {
			assert.Equal(t, 0, *totals.Delta)
		}
	})

	t.Run("full round then delete one unit", func(t *testing.T) {
		// A nine-unit round entered as [5,4,6,5,4,5,6,4,5] sums to 44.
		values := []int{5, 4, 6, 5, 4, 5, 6, 4, 5}
		records := make([]DetailRecord, 0, len(values))
		for i, v := range values {
			records = append(records, DetailRecord{Ordinal: i + 1, PrimaryCount: v})
		}

		totals := RecomputeTotals(records, rules)
		assert.Equal(t, 44, totals.Total)
		assert.Equal(t, 9, totals.UnitsCompleted)
		if assert.NotNil(t, totals.Delta) {
			assert.Equal(t, 44-27, *totals.Delta)
		}

		// Removing the third unit (value 6) leaves 38 over 8 units.
		remaining := append(append([]DetailRecord{}, records[:2]...), records[3:]...)
		totals = RecomputeTotals(remaining, rules)
		assert.Equal(t, 38, totals.Total)
		assert.Equal(t, 8, totals.UnitsCompleted)
		if assert.NotNil(t, totals.Delta) {
			assert.Equal(t, 38-24, *totals.Delta)
		}
	})

	t.Run("recompute is deterministic regardless of order", func(t *testing.T) {
		ordered := []DetailRecord{{Ordinal: 1, PrimaryCount: 2}, {Ordinal: 2, PrimaryCount: 7}, {Ordinal: 3, PrimaryCount: 4}}
		shuffled := []DetailRecord{{Ordinal: 3, PrimaryCount: 4}, {Ordinal: 1, PrimaryCount: 2}, {Ordinal: 2, PrimaryCount: 7}}
		assert.Equal(t, RecomputeTotals(ordered, rules), RecomputeTotals(shuffled, rules))
	})
}
