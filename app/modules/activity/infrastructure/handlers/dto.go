package activityhandlers

import (
	"time"

	"github.com/google/uuid"
)

type createActivityRequest struct {
	Type        string    `json:"type" validate:"required,oneof=scored_round team_match social_event"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"max=200"`
	Visibility  string    `json:"visibility" validate:"omitempty,oneof=public private participants_only"`
}

type updateActivityRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location" validate:"omitempty,max=200"`
	Visibility  *string    `json:"visibility" validate:"omitempty,oneof=public private participants_only"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending active completed cancelled"`
}

type addParticipantsRequest struct {
	AccountIDs  []uuid.UUID `json:"account_ids" validate:"required,min=1,max=100"`
	DefaultRole string      `json:"default_role" validate:"omitempty,oneof=organizer participant spectator"`
}

type attestRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed declined maybe"`
}

type writeDetailRecordRequest struct {
	PrimaryCount   int  `json:"primary_count" validate:"required,min=1"`
	SecondaryCount *int `json:"secondary_count" validate:"omitempty,min=0"`
	Flag           bool `json:"flag"`
}

type addMediaRequest struct {
	URL       string `json:"url" validate:"required,url,max=2048"`
	MediaType string `json:"media_type" validate:"required,max=100"`
	Position  int    `json:"position" validate:"min=0"`
}

type publishResponse struct {
	SummaryRef uuid.UUID `json:"summary_ref"`
}
