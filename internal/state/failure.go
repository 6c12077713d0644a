package state

import "errors"

// ErrTitleRequired is returned by Add when the trimmed title is empty. It is
// a local validation error; no remote call is made.
var ErrTitleRequired = errors.New("title required")

// Failure is the current-error slot: at most one category is surfaced at a
// time, replaced on every new attempt and dismissible by the user. Raw
// transport detail never reaches the UI, only the fixed message per category.
type Failure int

const (
	FailureNone Failure = iota
	FailureLoad
	FailureAdd
	FailureUpdate
	FailureDelete
	FailureTitleRequired
)

// Message returns the user-facing text for the failure, or "" for none.
func (f Failure) Message() string {
	switch f {
	case FailureLoad:
		return "Unable to load todos"
	case FailureAdd:
		return "Unable to add todo"
	case FailureUpdate:
		return "Unable to update todo"
	case FailureDelete:
		return "Unable to delete todo"
	case FailureTitleRequired:
		return "Todo title cannot be empty"
	default:
		return ""
	}
}

// ToggleDirection records which way a toggle-all run is pushing the list.
// Decided once from the snapshot taken at invocation, never re-derived
// mid-flight.
type ToggleDirection int

const (
	// ToggleNone means no toggle-all is in flight.
	ToggleNone ToggleDirection = iota
	// MarkAllActive unchecks every item (chosen when all are completed,
	// vacuously so for an empty list).
	MarkAllActive
	// ActivateRemaining checks only the currently-active items; completed
	// ones are untouched and make no remote call.
	ActivateRemaining
)
