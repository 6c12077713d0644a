package server

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/todosync/internal/server/sqlite"
	"github.com/idilsaglam/todosync/internal/store"
	"github.com/idilsaglam/todosync/internal/store/rest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "todos.sqlite3"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(New(st, slog.New(slog.DiscardHandler)).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestCRUDRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c := rest.New(srv.URL, 1)
	ctx := context.Background()

	created, err := c.Create(ctx, "buy milk")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Title != "buy milk" || created.Completed {
		t.Fatalf("created = %+v", created)
	}

	second, err := c.Create(ctx, "walk dog")
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	todos, err := c.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 2 || todos[0].ID != created.ID || todos[1].ID != second.ID {
		t.Fatalf("list order broken: %+v", todos)
	}

	updated, err := c.Update(ctx, created.ID, store.Patch{Completed: store.BoolPtr(true)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.Title != "buy milk" {
		t.Errorf("partial update touched other fields: %+v", updated)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	todos, err = c.ListAll(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != second.ID {
		t.Errorf("unexpected todos after delete: %+v", todos)
	}
}

func TestListFiltersByOwner(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	alice := rest.New(srv.URL, 1)
	bob := rest.New(srv.URL, 2)

	if _, err := alice.Create(ctx, "alice todo"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := bob.Create(ctx, "bob todo"); err != nil {
		t.Fatalf("create: %v", err)
	}

	todos, err := alice.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "alice todo" {
		t.Errorf("owner filter broken: %+v", todos)
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/todos", "application/json",
		bytes.NewReader([]byte(`{"title":"   ","userId":1}`)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPatchUnknownIDReturnsNotFound(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/todos/999",
		bytes.NewReader([]byte(`{"completed":true}`)))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDeleteUnknownIDReturnsNotFound(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/todos/999", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
