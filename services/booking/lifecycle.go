package booking

import "wanderly/models"

// Status is a booking lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusWaiting   Status = "waiting"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// transitions is the legal edge set. failed and confirmed are
// terminal; a failed booking attempt is never resurrected.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPending},
	StatusPending:   {StatusWaiting, StatusConfirmed, StatusFailed},
	StatusWaiting:   {StatusConfirmed},
	StatusConfirmed: {},
	StatusFailed:    {},
}

// CanTransition reports whether moving from one status to another is
// legal. A same-status transition is always allowed as a no-op, which
// is what makes redelivered gateway events harmless at this level.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// Transition moves the booking to the target status, enforcing the
// legal edge set. Moving to the current status is a no-op, not an
// error.
func Transition(b *models.Booking, to Status) error {
	from := Status(b.Status)
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return NewLifecycleError(CodeConflict,
			"illegal booking transition from "+b.Status+" to "+string(to))
	}
	b.Status = string(to)
	return nil
}
