package activityservice

import "errors"

// Domain errors for the activity service. These represent business outcomes
// that handlers should map to client responses rather than treat as
// infrastructure failures.
var (
	// ErrAccessDenied covers both "forbidden" and "does not exist" for
	// non-public activities; callers must not be able to tell the two apart.
	ErrAccessDenied = errors.New("activity not accessible")

	// ErrNotFound indicates a sub-entity is absent for a caller whose access
	// to the parent activity is already established.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateParticipant indicates the (activity, account) pair already
	// has a membership row.
	ErrDuplicateParticipant = errors.New("participant already exists")

	// ErrInvalidInput indicates a request field failed domain validation,
	// e.g. an unknown activity type or an uninvitable role.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAttestationTransition indicates an illegal attestation
	// state-machine move.
	ErrInvalidAttestationTransition = errors.New("invalid attestation transition")

	// ErrInvalidDetailRecord indicates a detail record violates its
	// type-specific bounds. Detected before any mutation.
	ErrInvalidDetailRecord = errors.New("invalid detail record")

	// ErrContention indicates the header row lock could not be acquired in
	// time. The API layer retries a bounded number of times.
	ErrContention = errors.New("contribution header contended")

	// ErrActivityNotPublishable indicates publish was requested before the
	// activity reached an active state.
	ErrActivityNotPublishable = errors.New("activity not publishable")

	// ErrInvariantViolation indicates stored header totals disagree with the
	// underlying detail records. Never silently corrected: a detected
	// mismatch is a concurrency bug and hiding it would bury the evidence.
	ErrInvariantViolation = errors.New("aggregation invariant violated")
)
