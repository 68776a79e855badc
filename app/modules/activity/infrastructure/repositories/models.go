package activitydb

import (
	"time"

	activitydomain "github.com/fairway-collective/roundhouse/app/modules/activity/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Activity represents one shared multi-participant event.
type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`
	ID            uuid.UUID                     `bun:"id,pk,type:uuid"`
	CreatedBy     uuid.UUID                     `bun:"created_by,notnull,type:uuid"`
	Type          activitydomain.ActivityType   `bun:"activity_type,notnull"`
	Title         string                        `bun:"title,notnull"`
	Description   string                        `bun:"description,nullzero"`
	Date          time.Time                     `bun:"date,notnull"`
	Location      string                        `bun:"location,nullzero"`
	Visibility    activitydomain.Visibility     `bun:"visibility,notnull"`
	Status        activitydomain.ActivityStatus `bun:"status,notnull"`
	SummaryRef    *uuid.UUID                    `bun:"summary_ref,type:uuid"`
	CreatedAt     time.Time                     `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time                     `bun:",nullzero,notnull,default:current_timestamp"`

	// ORM relationships
	Participants []*Participant `bun:"rel:has-many,join:id=activity_id" json:"-"`
	Media        []*Media       `bun:"rel:has-many,join:id=activity_id" json:"-"`
}

// Participant represents one account's membership in one activity.
// Exactly one row per (activity_id, account_id).
type Participant struct {
	bun.BaseModel      `bun:"table:participants,alias:p"`
	ID                 uuid.UUID                        `bun:"id,pk,type:uuid"`
	ActivityID         uuid.UUID                        `bun:"activity_id,notnull,type:uuid"`
	AccountID          uuid.UUID                        `bun:"account_id,notnull,type:uuid"`
	Status             activitydomain.AttestationStatus `bun:"status,notnull,default:'pending'"`
	RespondedAt        *time.Time                       `bun:"responded_at"`
	Role               activitydomain.Role              `bun:"role,notnull,default:'participant'"`
	HasContributed     bool                             `bun:"has_contributed,notnull,default:false"`
	LastContributionAt *time.Time                       `bun:"last_contribution_at"`
	CreatedAt          time.Time                        `bun:",nullzero,notnull,default:current_timestamp"`

	// ORM relationships
	Activity *Activity           `bun:"rel:belongs-to,join:activity_id=id" json:"-"`
	Header   *ContributionHeader `bun:"rel:has-one,join:id=participant_id" json:"-"`
}

// ContributionHeader is the per-participant aggregate. The totals are cache
// columns owned by the aggregator; no other code path writes them.
type ContributionHeader struct {
	bun.BaseModel  `bun:"table:contribution_headers,alias:ch"`
	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	ParticipantID  uuid.UUID `bun:"participant_id,notnull,unique,type:uuid"`
	EnteredBy      uuid.UUID `bun:"entered_by,notnull,type:uuid"`
	Confirmed      bool      `bun:"confirmed,notnull,default:false"`
	Total          int       `bun:"total,notnull,default:0"`
	UnitsCompleted int       `bun:"units_completed,notnull,default:0"`
	Delta          *int      `bun:"delta"`
	UpdatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`

	// ORM relationships
	Participant *Participant    `bun:"rel:belongs-to,join:participant_id=id" json:"-"`
	Records     []*DetailRecord `bun:"rel:has-many,join:id=header_id" json:"-"`
}

// DetailRecord is one scoring unit under a contribution header.
// Exactly one row per (header_id, ordinal).
type DetailRecord struct {
	bun.BaseModel  `bun:"table:detail_records,alias:dr"`
	ID             uuid.UUID `bun:"id,pk,type:uuid"`
	HeaderID       uuid.UUID `bun:"header_id,notnull,type:uuid"`
	Ordinal        int       `bun:"ordinal,notnull"`
	PrimaryCount   int       `bun:"primary_count,notnull"`
	SecondaryCount *int      `bun:"secondary_count"`
	Flag           bool      `bun:"flag,notnull,default:false"`
	EnteredBy      uuid.UUID `bun:"entered_by,notnull,type:uuid"`
	CreatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`

	// ORM relationships
	Header *ContributionHeader `bun:"rel:belongs-to,join:header_id=id" json:"-"`
}

// Media is an opaque reference to an externally stored blob.
type Media struct {
	bun.BaseModel `bun:"table:activity_media,alias:am"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	ActivityID    uuid.UUID `bun:"activity_id,notnull,type:uuid"`
	URL           string    `bun:"url,notnull"`
	MediaType     string    `bun:"media_type,notnull"`
	Position      int       `bun:"position,notnull,default:0"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// FeedSummary is the bridge-side materialization of a published activity.
// One row per activity; republishing updates the row in place so the
// summary reference stays stable.
type FeedSummary struct {
	bun.BaseModel `bun:"table:feed_summaries,alias:fs"`
	ActivityID    uuid.UUID `bun:"activity_id,pk,type:uuid"`
	SummaryRef    uuid.UUID `bun:"summary_ref,notnull,unique,type:uuid"`
	Snapshot      []byte    `bun:"snapshot,notnull,type:jsonb"`
	PublishedAt   time.Time `bun:"published_at,notnull"`
	UpdatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
