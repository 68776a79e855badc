package activitydomain

import (
	"time"

	"github.com/google/uuid"
)

// AccountID identifies an authenticated account. Identity resolution is the
// identity provider's job; this subsystem only carries the id around.
type AccountID = uuid.UUID

// ActivityType is the closed set of activity kinds. The type is immutable
// after creation because detail-record bounds are type-specific.
type ActivityType string

const (
	ActivityTypeScoredRound ActivityType = "scored_round"
	ActivityTypeTeamMatch   ActivityType = "team_match"
	ActivityTypeSocialEvent ActivityType = "social_event"
)

// IsValid reports whether the activity type is one of the closed set.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeScoredRound, ActivityTypeTeamMatch, ActivityTypeSocialEvent:
		return true
	}
	return false
}

// Visibility controls who can see an activity.
type Visibility string

const (
	VisibilityPublic           Visibility = "public"
	VisibilityPrivate          Visibility = "private"
	VisibilityParticipantsOnly Visibility = "participants_only"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityParticipantsOnly:
		return true
	}
	return false
}

// ActivityStatus is the lifecycle state of an activity.
type ActivityStatus string

const (
	ActivityStatusPending   ActivityStatus = "pending"
	ActivityStatusActive    ActivityStatus = "active"
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

func (s ActivityStatus) IsValid() bool {
	switch s {
	case ActivityStatusPending, ActivityStatusActive, ActivityStatusCompleted, ActivityStatusCancelled:
		return true
	}
	return false
}

// IsPublishable reports whether the creator may publish a feed summary.
func (s ActivityStatus) IsPublishable() bool {
	switch s {
	case ActivityStatusActive, ActivityStatusCompleted:
		return true
	}
	return false
}

// AttestationStatus is a participant's self-declared membership state.
type AttestationStatus string

const (
	AttestationPending   AttestationStatus = "pending"
	AttestationConfirmed AttestationStatus = "confirmed"
	AttestationDeclined  AttestationStatus = "declined"
	AttestationMaybe     AttestationStatus = "maybe"
)

func (s AttestationStatus) IsValid() bool {
	switch s {
	case AttestationPending, AttestationConfirmed, AttestationDeclined, AttestationMaybe:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the invitation's state machine.
// Re-inviting requires removing the row first; there is no reset to pending.
func (s AttestationStatus) IsTerminal() bool {
	return s == AttestationConfirmed || s == AttestationDeclined
}

// attestationTransitions encodes pending → {confirmed, declined, maybe} and
// maybe → {confirmed, declined}. Redundant confirm is handled as idempotent
// by the caller, not as a transition.
var attestationTransitions = map[AttestationStatus][]AttestationStatus{
	AttestationPending: {AttestationConfirmed, AttestationDeclined, AttestationMaybe},
	AttestationMaybe:   {AttestationConfirmed, AttestationDeclined},
}

// CanTransition reports whether from → to is a legal attestation transition.
func CanTransition(from, to AttestationStatus) bool {
	for _, allowed := range attestationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Role is a participant's role within one activity.
type Role string

const (
	RoleCreator     Role = "creator"
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
	RoleSpectator   Role = "spectator"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCreator, RoleOrganizer, RoleParticipant, RoleSpectator:
		return true
	}
	return false
}

// Activity is the shared multi-participant record.
type Activity struct {
	ID          uuid.UUID      `json:"id"`
	CreatedBy   AccountID      `json:"created_by"`
	Type        ActivityType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Date        time.Time      `json:"date"`
	Location    string         `json:"location,omitempty"`
	Visibility  Visibility     `json:"visibility"`
	Status      ActivityStatus `json:"status"`
	SummaryRef  *uuid.UUID     `json:"summary_ref,omitempty"`
}

// Participant is one account's membership row within one activity.
type Participant struct {
	ID                 uuid.UUID         `json:"id"`
	ActivityID         uuid.UUID         `json:"activity_id"`
	AccountID          AccountID         `json:"account_id"`
	Status             AttestationStatus `json:"status"`
	RespondedAt        *time.Time        `json:"responded_at,omitempty"`
	Role               Role              `json:"role"`
	HasContributed     bool              `json:"has_contributed"`
	LastContributionAt *time.Time        `json:"last_contribution_at,omitempty"`
}

// ContributionHeader is the per-participant aggregate row. Every numeric
// total on it is owned by the aggregator and never written by clients.
type ContributionHeader struct {
	ID             uuid.UUID `json:"id"`
	ParticipantID  uuid.UUID `json:"participant_id"`
	EnteredBy      AccountID `json:"entered_by"`
	Confirmed      bool      `json:"confirmed"`
	Total          int       `json:"total"`
	UnitsCompleted int       `json:"units_completed"`
	Delta          *int      `json:"delta,omitempty"`
}

// DetailRecord is one atomic unit of contributed data, e.g. one scored unit.
type DetailRecord struct {
	ID             uuid.UUID `json:"id"`
	HeaderID       uuid.UUID `json:"header_id"`
	Ordinal        int       `json:"ordinal"`
	PrimaryCount   int       `json:"primary_count"`
	SecondaryCount *int      `json:"secondary_count,omitempty"`
	Flag           bool      `json:"flag"`
	EnteredBy      AccountID `json:"entered_by"`
}

// Media is an opaque reference to externally stored media.
type Media struct {
	ID         uuid.UUID `json:"id"`
	ActivityID uuid.UUID `json:"activity_id"`
	URL        string    `json:"url"`
	MediaType  string    `json:"media_type"`
	Position   int       `json:"position"`
}

// ActivityDetail is the full read shape, filtered per access rules before it
// leaves the service.
type ActivityDetail struct {
	Activity     Activity             `json:"activity"`
	Participants []Participant        `json:"participants,omitempty"`
	Headers      []ContributionHeader `json:"headers,omitempty"`
	Records      []DetailRecord       `json:"records,omitempty"`
	Media        []Media              `json:"media,omitempty"`
}
