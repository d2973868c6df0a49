package repository

import (
	"testing"

	"ai-library-be/internal/repository/file"
	"ai-library-be/internal/repository/memory"
	"ai-library-be/pkg/store"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func newTestStore(t *testing.T) (*SessionStore, *file.SessionRepository) {
	t.Helper()
	persistence, err := file.NewSessionRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewSessionRepository: %v", err)
	}
	return NewSessionStore(memory.NewSessionRepository(0), persistence, noopLogger{}), persistence
}

func TestGetOrCreateNewSession(t *testing.T) {
	s, _ := newTestStore(t)

	session := s.GetOrCreate("user-42")
	if session.ID != "user-42" {
		t.Errorf("got id %q, want user-42", session.ID)
	}
	if len(session.History) != 0 {
		t.Errorf("new session should start empty, got %d messages", len(session.History))
	}

	// Second call returns the same in-memory session.
	again := s.GetOrCreate("user-42")
	if again != session {
		t.Error("expected the cached session pointer")
	}
}

func TestAppendRoundTrip(t *testing.T) {
	s, persistence := newTestStore(t)

	session := s.GetOrCreate("round-trip")
	s.Append(session, store.RoleUser, "tìm sách python")
	s.Append(session, store.RoleModel, "Danh sách sách liên quan: ...")

	// Reload straight from disk, bypassing the cache.
	loaded, err := persistence.Load("round-trip")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("session was not persisted")
	}
	if len(loaded.History) != 2 {
		t.Fatalf("got %d messages, want 2", len(loaded.History))
	}
	if loaded.History[0].Role != store.RoleUser || loaded.History[0].Text != "tìm sách python" {
		t.Errorf("first message mismatch: %+v", loaded.History[0])
	}
	if loaded.History[1].Role != store.RoleModel {
		t.Errorf("second message role %q, want model", loaded.History[1].Role)
	}
}

func TestLastResultsPersisted(t *testing.T) {
	s, persistence := newTestStore(t)

	session := s.GetOrCreate("results")
	books := []store.Book{{Identifier: "b1", Title: "Học Python", Score: 0.91}}
	s.SetLastResults(session, books)

	loaded, err := persistence.Load("results")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.LastResults) != 1 || loaded.LastResults[0].Identifier != "b1" {
		t.Errorf("last results not persisted: %+v", loaded.LastResults)
	}
}

func TestSanitizedKeysCollapse(t *testing.T) {
	s, _ := newTestStore(t)

	a := s.GetOrCreate("user/../42")
	b := s.GetOrCreate("user..42")
	if a != b {
		t.Error("ids that sanitize identically must map to one session")
	}
	if a.ID != "user42" {
		t.Errorf("got id %q, want user42", a.ID)
	}
}

func TestClear(t *testing.T) {
	s, persistence := newTestStore(t)

	session := s.GetOrCreate("to-clear")
	s.Append(session, store.RoleUser, "hello")

	if err := s.Clear("to-clear"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	loaded, err := persistence.Load("to-clear")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != nil {
		t.Error("cleared session still on disk")
	}

	fresh := s.GetOrCreate("to-clear")
	if len(fresh.History) != 0 {
		t.Error("cleared session should come back empty")
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-123_X", "abc-123_X"},
		{"../../etc/passwd", "etcpasswd"},
		{"user 42!", "user42"},
		{"", "default"},
		{"///", "default"},
	}
	for _, tt := range tests {
		if got := file.SanitizeID(tt.in); got != tt.want {
			t.Errorf("SanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
