package activitydomain

// Operation is the closed set of actions the access evaluator decides on.
type Operation string

const (
	OpView                Operation = "view"
	OpUpdateActivity      Operation = "update_activity"
	OpDeleteActivity      Operation = "delete_activity"
	OpInviteParticipant   Operation = "invite_participant"
	OpRemoveParticipant   Operation = "remove_participant"
	OpLeaveActivity       Operation = "leave_activity"
	OpAttest              Operation = "attest"
	OpViewContributions   Operation = "view_contributions"
	OpWriteOwnDetail      Operation = "write_own_detail"
	OpPrefillDetail       Operation = "prefill_detail"
	OpConfirmContribution Operation = "confirm_contribution"
	OpPublish             Operation = "publish"
	OpManageMedia         Operation = "manage_media"
)

// Actor is the evaluator's view of the requesting account: its id plus its
// participant row in the activity under evaluation, if any.
type Actor struct {
	AccountID AccountID
	// Membership is nil when the account has no participant row.
	Membership *Membership
}

// Membership is the slice of a participant row the evaluator needs.
type Membership struct {
	Role   Role
	Status AttestationStatus
}

// Can decides whether the actor may perform op on the activity. It is a pure
// function of its inputs, evaluated once at the boundary of every request.
// Rules are checked in precedence order; everything not allowed is denied.
func Can(actor Actor, activity Activity, op Operation) bool {
	// 1. The creator may do anything on their own activity.
	if actor.AccountID == activity.CreatedBy {
		return true
	}

	m := actor.Membership

	// 2. Organizers manage the roster and see all contribution data, but
	// activity-level fields stay creator-only.
	if m != nil && m.Role == RoleOrganizer {
		switch op {
		case OpInviteParticipant, OpRemoveParticipant, OpViewContributions, OpView:
			return true
		}
	}

	// 3. Any participant row grants metadata visibility unless the activity
	// is private.
	if m != nil && op == OpView && activity.Visibility != VisibilityPrivate {
		return true
	}

	// Attesting and leaving act on the caller's own row and need nothing
	// more than having one.
	if m != nil && (op == OpAttest || op == OpLeaveActivity) {
		return true
	}

	// 4. Only a confirmed participant writes their own detail records or
	// confirms their own header. Pre-fill on behalf of others is creator-only
	// and already covered by rule 1.
	if m != nil && m.Status == AttestationConfirmed {
		switch op {
		case OpWriteOwnDetail, OpConfirmContribution, OpViewContributions:
			return true
		}
	}

	// 5. Accounts with no row see public activities only.
	if m == nil && op == OpView && activity.Visibility == VisibilityPublic {
		return true
	}

	// 6. Everything else: deny.
	return false
}
