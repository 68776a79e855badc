package activityservice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SummarySnapshot is the read-only view of an activity handed to the feed
// collaborator: roster plus confirmed totals only, never provisional data.
type SummarySnapshot struct {
	SummaryRef  uuid.UUID         `json:"summary_ref"`
	ActivityID  uuid.UUID         `json:"activity_id"`
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Date        time.Time         `json:"date"`
	Location    string            `json:"location,omitempty"`
	Roster      []SummaryEntry    `json:"roster"`
	PublishedAt time.Time         `json:"published_at"`
}

// SummaryEntry is one confirmed participant's line in the snapshot.
type SummaryEntry struct {
	AccountID      uuid.UUID `json:"account_id"`
	Role           string    `json:"role"`
	Total          *int      `json:"total,omitempty"`
	UnitsCompleted *int      `json:"units_completed,omitempty"`
	Delta          *int      `json:"delta,omitempty"`
}

// SummaryPublisher hands a snapshot to the external feed collaborator.
// Implementations must be idempotent per summary reference.
type SummaryPublisher interface {
	PublishSummary(ctx context.Context, snapshot SummarySnapshot) error
}
