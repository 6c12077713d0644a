// Package store defines the backend-agnostic contract for the remote todo
// collection. The reconciliation layer never talks to a transport directly.
package store

import (
	"context"

	"github.com/idilsaglam/todosync/internal/model"
)

// Patch is a partial modification of a todo. Nil fields are left untouched
// server-side.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsZero reports whether the patch would change nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Completed == nil
}

// Store is the remote CRUD contract. Every call may fail with a transport
// error; callers translate those into user-facing messages. There is no
// batching primitive: bulk semantics are composed client-side from N
// independent calls.
type Store interface {
	// ListAll fetches the full current collection in server order.
	ListAll(ctx context.Context) ([]model.Todo, error)

	// Create persists a new todo with completed=false and returns the full
	// server-assigned record, including its id.
	Create(ctx context.Context, title string) (model.Todo, error)

	// Update applies a partial modification and returns the updated record.
	Update(ctx context.Context, id int64, p Patch) (model.Todo, error)

	// Delete removes a todo by id.
	Delete(ctx context.Context, id int64) error
}

// StringPtr and BoolPtr build patch fields inline.
func StringPtr(s string) *string { return &s }
func BoolPtr(b bool) *bool       { return &b }
