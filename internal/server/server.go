// Package server exposes the todo collection over the JSON CRUD contract
// the TUI client speaks: list, create, patch and delete on /todos.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/server/sqlite"
	"github.com/idilsaglam/todosync/internal/store"
)

// Server handles the REST endpoints over a sqlite store.
type Server struct {
	store *sqlite.Store
	log   *slog.Logger
}

// New creates a Server over st.
func New(st *sqlite.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: st, log: log}
}

// Router builds the HTTP routing table with request logging.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			m := httpsnoop.CaptureMetrics(handler, writer, request)
			s.log.Info("handled", "method", request.Method, "url", request.URL, "duration", m.Duration, "status", m.Code)
		})
	})

	r.Methods(http.MethodGet).Path("/todos").HandlerFunc(s.listTodos)
	r.Methods(http.MethodPost).Path("/todos").HandlerFunc(s.createTodo)
	r.Methods(http.MethodPatch).Path("/todos/{id:[0-9]+}").HandlerFunc(s.patchTodo)
	r.Methods(http.MethodDelete).Path("/todos/{id:[0-9]+}").HandlerFunc(s.deleteTodo)
	return r
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}
		userID = id
	}

	todos, err := s.store.List(r.Context(), userID)
	if err != nil {
		s.log.Error("list todos", "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var t model.Todo
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	t.ID = 0 // ids are assigned here, never accepted from the client
	t.Completed = false

	created, err := s.store.Insert(r.Context(), t)
	if err != nil {
		s.log.Error("insert todo", "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) patchTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var p store.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		if trimmed == "" {
			http.Error(w, "title cannot be blank", http.StatusBadRequest)
			return
		}
		p.Title = &trimmed
	}

	updated, found, err := s.store.Patch(r.Context(), id, p)
	if err != nil {
		s.log.Error("patch todo", "id", id, "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "todo not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	found, err := s.store.Delete(r.Context(), id)
	if err != nil {
		s.log.Error("delete todo", "id", id, "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "todo not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
