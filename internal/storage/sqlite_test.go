package storage

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesMigrations(t *testing.T) {
	s := openTestStore(t)

	versions, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) == 0 || versions[0] != 1 {
		t.Errorf("AppliedMigrations = %v, want [1 ...]", versions)
	}
}

func TestOpenCreatesDataDir(t *testing.T) {
	dir := t.TempDir() + "/nested/data"
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if _, _, err := s.LoadProfile("anyone"); err != nil {
		t.Errorf("store not usable after open: %v", err)
	}
}

func TestParseMigrationVersion(t *testing.T) {
	v, err := parseMigrationVersion("001_initial.sql")
	if err != nil || v != 1 {
		t.Errorf("parseMigrationVersion = (%d, %v), want (1, nil)", v, err)
	}
	if _, err := parseMigrationVersion("notaversion.sql"); err == nil {
		t.Error("expected error for unversioned filename")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, found, err := s.LoadProfile("alice"); err != nil || found {
		t.Fatalf("LoadProfile before save = (found=%v, err=%v), want not found", found, err)
	}

	if err := s.SaveProfile("alice", []byte(`{"user_id":"alice"}`)); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	data, found, err := s.LoadProfile("alice")
	if err != nil || !found {
		t.Fatalf("LoadProfile = (found=%v, err=%v)", found, err)
	}
	if string(data) != `{"user_id":"alice"}` {
		t.Errorf("profile data = %s", data)
	}
}

func TestSaveProfileUpserts(t *testing.T) {
	s := openTestStore(t)

	s.SaveProfile("bob", []byte(`{"v":1}`))
	if err := s.SaveProfile("bob", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second SaveProfile: %v", err)
	}

	data, _, err := s.LoadProfile("bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"v":2}` {
		t.Errorf("profile data = %s, want the updated record", data)
	}

	ids, err := s.ListProfileIDs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("ListProfileIDs = %v, want a single id", ids)
	}
}

func TestListProfileIDsOrdered(t *testing.T) {
	s := openTestStore(t)

	for _, id := range []string{"zoe", "adam", "mia"} {
		if err := s.SaveProfile(id, []byte("{}")); err != nil {
			t.Fatalf("SaveProfile(%s): %v", id, err)
		}
	}

	ids, err := s.ListProfileIDs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"adam", "mia", "zoe"}
	if len(ids) != len(want) {
		t.Fatalf("ListProfileIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestDeleteProfileRemovesInteractions(t *testing.T) {
	s := openTestStore(t)

	s.SaveProfile("carol", []byte("{}"))
	s.SaveInteraction(Interaction{
		ID:        "i-1",
		UserID:    "carol",
		CreatedAt: time.Now(),
		Message:   "hello",
		Response:  "hi",
		Topic:     "general",
		Emotion:   "neutral",
	})

	if err := s.DeleteProfile("carol"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}

	if _, found, _ := s.LoadProfile("carol"); found {
		t.Error("profile should be gone")
	}
	if _, err := s.GetInteraction("i-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetInteraction after delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteProfileNonexistent(t *testing.T) {
	s := openTestStore(t)
	if err := s.DeleteProfile("ghost"); err != nil {
		t.Errorf("deleting unknown profile should not error: %v", err)
	}
}

func TestInteractionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in := Interaction{
		ID:        "i-42",
		UserID:    "dave",
		CreatedAt: created,
		Message:   "what is 2+2",
		Response:  "4",
		Topic:     "math",
		Emotion:   "neutral",
		Sentiment: 0.1,
	}
	if err := s.SaveInteraction(in); err != nil {
		t.Fatalf("SaveInteraction: %v", err)
	}

	got, err := s.GetInteraction("i-42")
	if err != nil {
		t.Fatalf("GetInteraction: %v", err)
	}
	if got.UserID != "dave" || got.Message != "what is 2+2" || got.Response != "4" {
		t.Errorf("interaction fields = %+v", got)
	}
	if got.Topic != "math" || got.Emotion != "neutral" || got.Sentiment != 0.1 {
		t.Errorf("classification fields = %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestGetInteractionNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetInteraction("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetRecentInteractions(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := s.SaveInteraction(Interaction{
			ID:        fmt.Sprintf("i-%d", i),
			UserID:    "erin",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Message:   fmt.Sprintf("message %d", i),
			Response:  "ok",
			Topic:     "general",
			Emotion:   "neutral",
		})
		if err != nil {
			t.Fatalf("SaveInteraction %d: %v", i, err)
		}
	}
	// Another user's rows must not leak in.
	s.SaveInteraction(Interaction{
		ID: "other", UserID: "frank", CreatedAt: base, Message: "x", Response: "y",
		Topic: "general", Emotion: "neutral",
	})

	got, err := s.GetRecentInteractions("erin", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].ID != "i-4" || got[1].ID != "i-3" || got[2].ID != "i-2" {
		t.Errorf("order = [%s %s %s], want newest first", got[0].ID, got[1].ID, got[2].ID)
	}

	got, err = s.GetRecentInteractions("nobody", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unknown user should have no interactions, got %d", len(got))
	}
}
