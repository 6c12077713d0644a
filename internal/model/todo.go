// Package model holds the domain types shared by the store, the
// reconciliation layer and the UI.
package model

// Todo is a persisted task record. The ID is assigned by the remote store
// and never changes afterwards; Title is trimmed, non-empty text.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int64  `json:"userId"`
}

// Filter selects which part of the list a view shows. Client-side only,
// never persisted.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Matches reports whether a todo belongs to the filtered view.
func (f Filter) Matches(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the todos matching f, preserving relative order. The input
// slice is never mutated; FilterAll returns it as-is.
func (f Filter) Apply(todos []Todo) []Todo {
	if f == FilterAll {
		return todos
	}
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
