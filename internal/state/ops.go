package state

import (
	"context"
	"strings"
	"sync"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/store"
)

// Every operation returns the error it settled with. For Load, Add, Delete
// and the bulk operations the failure is already recorded in the error slot
// and callers are free to ignore the return; Rename and SetCompleted callers
// must react to it (an editor keeps the item in edit mode on failure).

// Load replaces the collection with the store's full listing. On failure the
// previous collection is left untouched.
func (c *Controller) Load(ctx context.Context) error {
	c.beginAttempt()

	todos, err := c.store.ListAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failure = FailureLoad
		return err
	}
	c.replaceTodos(todos)
	return nil
}

// Add validates and persists a new todo, appending the server-assigned
// record on success. While the create is in flight the trimmed title is
// exposed as the pending-creation placeholder so the UI can render a loading
// row without inventing an id; the placeholder and the input lock are
// cleared on settlement regardless of outcome.
func (c *Controller) Add(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)

	c.mu.Lock()
	c.failure = FailureNone
	if title == "" {
		c.failure = FailureTitleRequired
		c.mu.Unlock()
		return ErrTitleRequired
	}
	c.pendingTitle = title
	c.inputLocked = true
	c.mu.Unlock()

	created, err := c.store.Create(ctx, title)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingTitle = ""
	c.inputLocked = false
	if err != nil {
		c.failure = FailureAdd
		return err
	}
	next := make([]model.Todo, len(c.todos), len(c.todos)+1)
	copy(next, c.todos)
	c.replaceTodos(append(next, created))
	return nil
}

// Delete removes one todo. The entry leaves the collection only after the
// remote delete succeeded; on failure the list is untouched.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.beginAttempt()
	c.setBusy(id)
	err := c.store.Delete(ctx, id)
	c.clearBusy(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failure = FailureDelete
		return err
	}
	c.replaceTodos(withoutID(c.todos, id))
	return nil
}

// Rename changes a todo's title. The title is trimmed first; renaming to
// empty text is a delete intent and is redirected to Delete.
func (c *Controller) Rename(ctx context.Context, id int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return c.Delete(ctx, id)
	}
	return c.update(ctx, id, store.Patch{Title: store.StringPtr(title)})
}

// SetCompleted flips one todo's completed flag.
func (c *Controller) SetCompleted(ctx context.Context, id int64, completed bool) error {
	return c.update(ctx, id, store.Patch{Completed: store.BoolPtr(completed)})
}

// update persists a partial modification and merges the changed fields into
// the matching entry, leaving every other field and entry as it was.
func (c *Controller) update(ctx context.Context, id int64, p store.Patch) error {
	c.beginAttempt()
	c.setBusy(id)
	_, err := c.store.Update(ctx, id, p)
	c.clearBusy(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failure = FailureUpdate
		return err
	}
	next := make([]model.Todo, len(c.todos))
	copy(next, c.todos)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if p.Title != nil {
			next[i].Title = *p.Title
		}
		if p.Completed != nil {
			next[i].Completed = *p.Completed
		}
		break
	}
	c.replaceTodos(next)
	return nil
}

// ClearCompleted deletes every completed todo in one concurrent wave. All
// deletes are attempted regardless of individual failures; after the whole
// wave settles the collection becomes the invocation snapshot minus the
// items whose delete succeeded. With nothing completed it is a full no-op:
// no calls, no marker, no error.
func (c *Controller) ClearCompleted(ctx context.Context) error {
	c.mu.Lock()
	c.failure = FailureNone
	snapshot := make([]model.Todo, len(c.todos))
	copy(snapshot, c.todos)
	var targets []int64
	for _, t := range snapshot {
		if t.Completed {
			targets = append(targets, t.ID)
		}
	}
	if len(targets) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.clearing = true
	c.mu.Unlock()

	results := fanOut(targets, func(id int64) error {
		return c.store.Delete(ctx, id)
	})

	var firstErr error
	deleted := make(map[int64]struct{}, len(targets))
	for _, r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		deleted[r.id] = struct{}{}
	}
	working := snapshot[:0:0]
	for _, t := range snapshot {
		if _, ok := deleted[t.ID]; !ok {
			working = append(working, t)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceTodos(working)
	c.clearing = false
	if firstErr != nil {
		c.failure = FailureDelete
		return firstErr
	}
	return nil
}

// ToggleAll flips the whole list in one concurrent wave. The direction is
// decided once from the invocation snapshot: if every item is already
// completed the wave unchecks all of them, otherwise it checks only the
// currently-active items and leaves completed ones alone (no call for
// those). Each item's flag changes in the result only if its own update
// succeeded. An empty list chooses MarkAllActive vacuously and settles
// without calls, marker or error.
func (c *Controller) ToggleAll(ctx context.Context) error {
	c.mu.Lock()
	c.failure = FailureNone
	snapshot := make([]model.Todo, len(c.todos))
	copy(snapshot, c.todos)

	direction := ActivateRemaining
	if allCompleted(snapshot) {
		direction = MarkAllActive
	}
	target := direction == ActivateRemaining // the completed value being written
	var ids []int64
	for _, t := range snapshot {
		if t.Completed != target {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.toggling = direction
	c.mu.Unlock()

	results := fanOut(ids, func(id int64) error {
		_, err := c.store.Update(ctx, id, store.Patch{Completed: store.BoolPtr(target)})
		return err
	})

	var firstErr error
	flipped := make(map[int64]struct{}, len(ids))
	for _, r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		flipped[r.id] = struct{}{}
	}
	working := make([]model.Todo, len(snapshot))
	copy(working, snapshot)
	for i := range working {
		if _, ok := flipped[working[i].ID]; ok {
			working[i].Completed = target
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceTodos(working)
	c.toggling = ToggleNone
	if firstErr != nil {
		c.failure = FailureUpdate
		return firstErr
	}
	return nil
}

// fanOut runs one call per id concurrently and resumes only after every call
// has settled; there is no early abort and no cancellation of the wave.
type callResult struct {
	id  int64
	err error
}

func fanOut(ids []int64, call func(id int64) error) []callResult {
	results := make([]callResult, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			results[i] = callResult{id: id, err: call(id)}
		}(i, id)
	}
	wg.Wait()
	return results
}

func allCompleted(todos []model.Todo) bool {
	for _, t := range todos {
		if !t.Completed {
			return false
		}
	}
	return true
}

func withoutID(todos []model.Todo, id int64) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
