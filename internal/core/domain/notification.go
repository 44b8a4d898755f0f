package domain

import "time"

// ChangeKind identifies which mutation produced a ChangeEvent.
type ChangeKind string

// Mutation kinds reported to observers.
const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// String returns the string representation.
func (k ChangeKind) String() string {
	return string(k)
}

// ChangeEvent is emitted after every successful store mutation.
// It is a side channel for user feedback, not part of the data contract.
type ChangeEvent struct {
	// Kind is the mutation that happened.
	Kind ChangeKind

	// Fragment is the fragment after the mutation, or the removed
	// fragment for deletes.
	Fragment Fragment

	// At is when the mutation completed.
	At time.Time
}

// Title returns a short human-readable headline for the event.
func (e ChangeEvent) Title() string {
	switch e.Kind {
	case ChangeCreated:
		return "Fragment created"
	case ChangeUpdated:
		return "Fragment updated"
	case ChangeDeleted:
		return "Fragment deleted"
	default:
		return "Fragment changed"
	}
}

// Description returns the longer notification body.
func (e ChangeEvent) Description() string {
	switch e.Kind {
	case ChangeCreated:
		return "Your knowledge fragment has been added"
	case ChangeUpdated:
		return "Your knowledge fragment has been updated"
	case ChangeDeleted:
		return "Your knowledge fragment has been removed"
	default:
		return "Your knowledge fragment has changed"
	}
}

// Destructive reports whether the event should be presented as destructive.
func (e ChangeEvent) Destructive() bool {
	return e.Kind == ChangeDeleted
}
