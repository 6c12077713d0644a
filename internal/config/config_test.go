package config

import (
	"testing"
	"time"
)

func TestLoadClientDefaults(t *testing.T) {
	c, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if c.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q", c.APIBaseURL)
	}
	if c.UserID != 1 {
		t.Errorf("UserID = %d, want 1", c.UserID)
	}
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.Timeout)
	}
}

func TestLoadClientFromEnv(t *testing.T) {
	t.Setenv("TODOSYNC_API_URL", "https://todos.example.com")
	t.Setenv("TODOSYNC_USER_ID", "42")
	t.Setenv("TODOSYNC_TIMEOUT", "250ms")

	c, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if c.APIBaseURL != "https://todos.example.com" || c.UserID != 42 || c.Timeout != 250*time.Millisecond {
		t.Errorf("unexpected config: %+v", c)
	}
}

func TestLoadClientRejectsBadValues(t *testing.T) {
	t.Setenv("TODOSYNC_USER_ID", "not-a-number")
	if _, err := LoadClient(); err == nil {
		t.Error("expected an error for a non-numeric user id")
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("TODOSYNC_ADDR", "0.0.0.0:9090")
	t.Setenv("TODOSYNC_DB", "/tmp/test.sqlite3")

	s, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if s.Addr != "0.0.0.0:9090" || s.DBPath != "/tmp/test.sqlite3" {
		t.Errorf("unexpected config: %+v", s)
	}
}
