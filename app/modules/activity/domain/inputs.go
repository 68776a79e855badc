package activitydomain

import "time"

// CreateActivityInput is the input for opening a new activity.
type CreateActivityInput struct {
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Date        time.Time    `json:"date"`
	Location    string       `json:"location,omitempty"`
	Visibility  Visibility   `json:"visibility"`
}

// UpdateActivityInput carries the creator's mutable field patch. Nil fields
// are left unchanged; the activity type has no field here because it is
// immutable.
type UpdateActivityInput struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
	Location    *string         `json:"location,omitempty"`
	Visibility  *Visibility     `json:"visibility,omitempty"`
	Status      *ActivityStatus `json:"status,omitempty"`
}

// AddParticipantsInput invites a batch of accounts.
type AddParticipantsInput struct {
	AccountIDs  []AccountID `json:"account_ids"`
	DefaultRole Role        `json:"default_role,omitempty"`
}

// WriteDetailRecordInput upserts one scoring unit, keyed on its ordinal.
type WriteDetailRecordInput struct {
	Ordinal        int  `json:"ordinal"`
	PrimaryCount   int  `json:"primary_count"`
	SecondaryCount *int `json:"secondary_count,omitempty"`
	Flag           bool `json:"flag,omitempty"`
}

// AddMediaInput attaches an opaque media reference to an activity.
type AddMediaInput struct {
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	Position  int    `json:"position,omitempty"`
}
