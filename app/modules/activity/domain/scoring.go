package activitydomain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoScoring indicates the activity type does not accept detail records.
	ErrNoScoring = errors.New("activity type does not record scores")

	// ErrPrimaryOutOfRange indicates the primary measure violates its bounds.
	ErrPrimaryOutOfRange = errors.New("primary measure out of range")

	// ErrSecondaryExceedsPrimary indicates the secondary measure is larger
	// than the primary one.
	ErrSecondaryExceedsPrimary = errors.New("secondary measure exceeds primary")

	// ErrOrdinalOutOfRange indicates the unit ordinal violates the type's range.
	ErrOrdinalOutOfRange = errors.New("ordinal out of range")
)

// ScoringRules are the type-specific bounds and reference baseline for
// detail records. Aggregation itself is type-independent; only the bounds
// and the per-unit target differ.
type ScoringRules struct {
	// Units is the number of scoring units in a complete contribution.
	Units int
	// MaxPrimary is the hard ceiling for the primary measure of one unit.
	MaxPrimary int
	// UnitTarget is the per-unit reference value; the delta compares the
	// running total against UnitTarget × units completed.
	UnitTarget int
}

var scoringRules = map[ActivityType]ScoringRules{
	ActivityTypeScoredRound: {Units: 9, MaxPrimary: 12, UnitTarget: 3},
	ActivityTypeTeamMatch:   {Units: 18, MaxPrimary: 15, UnitTarget: 4},
}

// RulesFor returns the scoring rules for an activity type. Types without
// scoring (social events) return ok = false and accept no detail records.
func RulesFor(t ActivityType) (ScoringRules, bool) {
	rules, ok := scoringRules[t]
	return rules, ok
}

// ReferenceTarget is the baseline a contribution of n completed units is
// measured against.
func (r ScoringRules) ReferenceTarget(units int) int {
	return r.UnitTarget * units
}

// ValidateMeasures checks one detail record's measures against the rules.
// Called before any write; a violation means nothing is mutated.
func (r ScoringRules) ValidateMeasures(ordinal, primary int, secondary *int) error {
	if ordinal < 1 || ordinal > r.Units {
		return fmt.Errorf("%w: ordinal %d not in 1..%d", ErrOrdinalOutOfRange, ordinal, r.Units)
	}
	if primary <= 0 || primary > r.MaxPrimary {
		return fmt.Errorf("%w: primary %d not in 1..%d", ErrPrimaryOutOfRange, primary, r.MaxPrimary)
	}
	if secondary != nil {
		if *secondary < 0 || *secondary > primary {
			return fmt.Errorf("%w: secondary %d, primary %d", ErrSecondaryExceedsPrimary, *secondary, primary)
		}
	}
	return nil
}

// Totals is the aggregator's output for one contribution header.
type Totals struct {
	Total          int
	UnitsCompleted int
	// Delta is nil when no units are completed: "no data" is distinct from
	// "on target".
	Delta *int
}

// RecomputeTotals derives header totals from the full current detail-record
// set. It is a deterministic full recompute, never an incremental delta, so
// concurrent writers serialized on the header always converge on the state
// of the latest committed write.
func RecomputeTotals(records []DetailRecord, rules ScoringRules) Totals {
	totals := Totals{UnitsCompleted: len(records)}
	for _, rec := range records {
		totals.Total += rec.PrimaryCount
	}
	if totals.UnitsCompleted > 0 {
		delta := totals.Total - rules.ReferenceTarget(totals.UnitsCompleted)
		totals.Delta = &delta
	}
	return totals
}
