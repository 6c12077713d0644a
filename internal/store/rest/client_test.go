package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/store"
)

func TestListAll(t *testing.T) {
	want := []model.Todo{
		{ID: 1, Title: "one", Completed: false, UserID: 7},
		{ID: 2, Title: "two", Completed: true, UserID: 7},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "7" {
			t.Errorf("userId = %q, want 7", got)
		}
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	c := New(srv.URL, 7)
	got, err := c.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("todos = %+v, want %+v", got, want)
	}
}

func TestCreateSendsTitleAndOwner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body model.Todo
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Title != "buy milk" || body.Completed || body.UserID != 7 {
			t.Errorf("unexpected body: %+v", body)
		}
		body.ID = 42
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := New(srv.URL, 7)
	created, err := c.Create(context.Background(), "buy milk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 42 || created.Title != "buy milk" {
		t.Errorf("created = %+v", created)
	}
}

func TestUpdateSendsOnlyProvidedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/todos/5" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
		if _, ok := fields["title"]; ok {
			t.Errorf("patch carried a title it should not: %s", raw)
		}
		if v, ok := fields["completed"]; !ok || v != true {
			t.Errorf("patch body = %s, want completed:true only", raw)
		}
		_ = json.NewEncoder(w).Encode(model.Todo{ID: 5, Title: "kept", Completed: true})
	}))
	defer srv.Close()

	c := New(srv.URL, 1)
	updated, err := c.Update(context.Background(), 5, store.Patch{Completed: store.BoolPtr(true)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Completed {
		t.Errorf("updated = %+v", updated)
	}
}

func TestDelete(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, 1)
	if err := c.Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/todos/9" {
		t.Errorf("request = %s %s, want DELETE /todos/9", gotMethod, gotPath)
	}
}

func TestErrorStatusSurfacesAsError(t *testing.T) {
	codes := []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError}
	for _, code := range codes {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", code)
		}))
		c := New(srv.URL, 1)

		if _, err := c.ListAll(context.Background()); err == nil {
			t.Errorf("status %d: ListAll returned nil error", code)
		}
		if _, err := c.Create(context.Background(), "x"); err == nil {
			t.Errorf("status %d: Create returned nil error", code)
		}
		if err := c.Delete(context.Background(), 1); err == nil {
			t.Errorf("status %d: Delete returned nil error", code)
		}
		srv.Close()
	}
}

func TestEmptyResponseBodyIsAccepted(t *testing.T) {
	// Some stores answer PATCH/DELETE with an empty 200.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 1)
	if _, err := c.Update(context.Background(), 1, store.Patch{Completed: store.BoolPtr(true)}); err != nil {
		t.Fatalf("Update with empty body: %v", err)
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the address refuses connections

	c := New(srv.URL, 1)
	if _, err := c.ListAll(context.Background()); err == nil {
		t.Error("expected a transport error from a closed server")
	}
}
