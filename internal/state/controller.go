// Package state owns the in-memory todo collection and reconciles it with
// the remote store. The Controller is the single owner: nothing mutates the
// collection except the settlement of a remote call inside one of its
// operation methods, and readers only ever see whole-list snapshots.
package state

import (
	"sync"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/store"
)

// Controller holds the todo collection plus the transient flags that drive
// per-item feedback: the pending-creation placeholder, the bulk progress
// markers, the per-item busy set and the error slot.
type Controller struct {
	store store.Store

	mu           sync.Mutex
	todos        []model.Todo
	views        *Views // memoized, nil until computed, reset on every list change
	failure      Failure
	pendingTitle string // non-empty only between create-request-sent and settled
	inputLocked  bool
	clearing     bool // clear-completed fan-out in flight
	toggling     ToggleDirection
	busy         map[int64]struct{}
}

// New creates a controller over the given store with an empty collection.
func New(s store.Store) *Controller {
	return &Controller{
		store: s,
		busy:  make(map[int64]struct{}),
	}
}

// Views are pure projections of the collection, recomputed only when the
// list itself is replaced or patched.
type Views struct {
	Active         []model.Todo
	Completed      []model.Todo
	ActiveCount    int
	CompletedCount int
	// AllCompleted is vacuously true for an empty list.
	AllCompleted bool
}

func computeViews(todos []model.Todo) Views {
	v := Views{}
	for _, t := range todos {
		if t.Completed {
			v.Completed = append(v.Completed, t)
		} else {
			v.Active = append(v.Active, t)
		}
	}
	v.ActiveCount = len(v.Active)
	v.CompletedCount = len(v.Completed)
	v.AllCompleted = v.CompletedCount == len(todos)
	return v
}

// Snapshot is a consistent copy of the controller state, safe to read while
// operations are in flight.
type Snapshot struct {
	Todos             []model.Todo
	Views             Views
	Failure           Failure
	PendingTitle      string // "" when no creation is pending
	InputLocked       bool
	ClearingCompleted bool
	Toggling          ToggleDirection
	busy              map[int64]struct{}
}

// Snapshot returns a copy of the current state. The returned slices are
// owned by the caller; later operations never write through them.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.views == nil {
		v := computeViews(c.todos)
		c.views = &v
	}
	busy := make(map[int64]struct{}, len(c.busy))
	for id := range c.busy {
		busy[id] = struct{}{}
	}
	todos := make([]model.Todo, len(c.todos))
	copy(todos, c.todos)

	return Snapshot{
		Todos:             todos,
		Views:             *c.views,
		Failure:           c.failure,
		PendingTitle:      c.pendingTitle,
		InputLocked:       c.inputLocked,
		ClearingCompleted: c.clearing,
		Toggling:          c.toggling,
		busy:              busy,
	}
}

// Filtered returns the todos visible under f, preserving order.
func (s Snapshot) Filtered(f model.Filter) []model.Todo {
	return f.Apply(s.Todos)
}

// BusyWith reports whether an operation is in flight for the given todo,
// either a single-item call or membership in the subset a bulk operation is
// touching.
func (s Snapshot) BusyWith(t model.Todo) bool {
	if _, ok := s.busy[t.ID]; ok {
		return true
	}
	if s.ClearingCompleted && t.Completed {
		return true
	}
	switch s.Toggling {
	case MarkAllActive:
		return true
	case ActivateRemaining:
		return !t.Completed
	}
	return false
}

// BusyAny reports whether any operation is in flight.
func (s Snapshot) BusyAny() bool {
	return len(s.busy) > 0 || s.PendingTitle != "" || s.ClearingCompleted || s.Toggling != ToggleNone
}

// DismissError clears the error slot without touching anything else.
func (c *Controller) DismissError() {
	c.mu.Lock()
	c.failure = FailureNone
	c.mu.Unlock()
}

// beginAttempt implements clear-on-retry: every operation starts with an
// empty error slot.
func (c *Controller) beginAttempt() {
	c.mu.Lock()
	c.failure = FailureNone
	c.mu.Unlock()
}

// replaceTodos swaps the collection wholesale and drops the memoized views.
// Callers must hold c.mu.
func (c *Controller) replaceTodos(todos []model.Todo) {
	c.todos = todos
	c.views = nil
}

func (c *Controller) setBusy(id int64) {
	c.mu.Lock()
	c.busy[id] = struct{}{}
	c.mu.Unlock()
}

func (c *Controller) clearBusy(id int64) {
	c.mu.Lock()
	delete(c.busy, id)
	c.mu.Unlock()
}
