// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/store"
)

// ErrNotFound is returned when a todo id does not exist.
var ErrNotFound = errors.New("not found")

// ErrInjected is the default error used by error injection.
var ErrInjected = errors.New("injected failure")

// FakeStore is an in-memory implementation of store.Store for testing. It
// records every call and supports per-method and per-id error injection.
type FakeStore struct {
	mu     sync.Mutex
	todos  []model.Todo
	nextID int64

	// Error injection
	ListAllErr error
	CreateErr  error
	UpdateErr  map[int64]error // id -> error
	DeleteErr  map[int64]error // id -> error

	// Call recording
	ListAllCalls int
	CreateCalls  []string // titles in call order
	UpdateCalls  map[int64][]store.Patch
	DeleteCalls  []int64
}

// NewFakeStore creates an empty fake store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		nextID:      1,
		UpdateErr:   make(map[int64]error),
		DeleteErr:   make(map[int64]error),
		UpdateCalls: make(map[int64][]store.Patch),
	}
}

// Seed replaces the stored collection and bumps the id counter past the
// highest seeded id.
func (f *FakeStore) Seed(todos ...model.Todo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.todos = append([]model.Todo(nil), todos...)
	for _, t := range todos {
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
}

// Todos returns a copy of the stored collection.
func (f *FakeStore) Todos() []model.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Todo(nil), f.todos...)
}

// ListAll implements store.Store.
func (f *FakeStore) ListAll(ctx context.Context) ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListAllCalls++
	if f.ListAllErr != nil {
		return nil, f.ListAllErr
	}
	return append([]model.Todo(nil), f.todos...), nil
}

// Create implements store.Store.
func (f *FakeStore) Create(ctx context.Context, title string) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls = append(f.CreateCalls, title)
	if f.CreateErr != nil {
		return model.Todo{}, f.CreateErr
	}
	t := model.Todo{ID: f.nextID, Title: title, Completed: false, UserID: 1}
	f.nextID++
	f.todos = append(f.todos, t)
	return t, nil
}

// Update implements store.Store.
func (f *FakeStore) Update(ctx context.Context, id int64, p store.Patch) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls[id] = append(f.UpdateCalls[id], p)
	if err := f.UpdateErr[id]; err != nil {
		return model.Todo{}, err
	}
	for i := range f.todos {
		if f.todos[i].ID != id {
			continue
		}
		if p.Title != nil {
			f.todos[i].Title = *p.Title
		}
		if p.Completed != nil {
			f.todos[i].Completed = *p.Completed
		}
		return f.todos[i], nil
	}
	return model.Todo{}, ErrNotFound
}

// Delete implements store.Store.
func (f *FakeStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls = append(f.DeleteCalls, id)
	if err := f.DeleteErr[id]; err != nil {
		return err
	}
	for i, t := range f.todos {
		if t.ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
