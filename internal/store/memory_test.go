package store

import (
	"context"
	"errors"
	"testing"

	"mute-bridge/internal/db"
)

func TestCreateSessionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.CreateSession(ctx, 7, "Alice", "ABCDEF"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.CreateSession(ctx, 7, "Mallory", "ZZZZZZ"); err != nil {
		t.Fatalf("duplicate create should be a no-op, got %v", err)
	}
	session, exists := s.Session(7)
	if !exists {
		t.Fatal("session missing")
	}
	if session.Username != "Alice" || session.Roomcode != "ABCDEF" {
		t.Fatalf("duplicate create overwrote row: %+v", session)
	}
}

func TestGhostFlagIsMonotonic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.CreateSession(ctx, 3, "Bob", "ABCDEF"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.MarkGhost(ctx, 3); err != nil {
		t.Fatalf("mark ghost failed: %v", err)
	}
	if err := s.RenameSession(ctx, 3, "Robert"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if err := s.RecolorSession(ctx, 3, 5); err != nil {
		t.Fatalf("recolor failed: %v", err)
	}
	session, _ := s.Session(3)
	if !session.IsGhost {
		t.Fatal("ghost flag reset by unrelated update")
	}
	if session.Username != "Robert" {
		t.Fatalf("rename lost: %+v", session)
	}
}

func TestMutationsOnAbsentRowAreNoOps(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.DeleteSession(ctx, 99); err != nil {
		t.Fatalf("delete on absent row: %v", err)
	}
	if err := s.RenameSession(ctx, 99, "Nobody"); err != nil {
		t.Fatalf("rename on absent row: %v", err)
	}
	if err := s.MarkGhost(ctx, 99); err != nil {
		t.Fatalf("mark ghost on absent row: %v", err)
	}
	if _, exists := s.Session(99); exists {
		t.Fatal("mutation created a row")
	}
}

func TestLookupCorrelation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if _, err := s.LookupCorrelation(ctx, 42); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := s.CreateSession(ctx, 42, "Carol", "ABCDEF"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id, err := s.LookupCorrelation(ctx, 42)
	if err != nil || id != 0 {
		t.Fatalf("expected zero handle for fresh session, got %d %v", id, err)
	}
	s.SetCorrelation(42, 123456789)
	id, err = s.LookupCorrelation(ctx, 42)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if id != 123456789 {
		t.Fatalf("expected 123456789, got %d", id)
	}
}

func TestLookupLink(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if _, err := s.LookupLink(ctx, 5); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	userID := uint64(42424242)
	s.SetLink(db.LinkedPlayer{ClientID: 5, Username: "Dana", DiscordUserID: &userID})
	link, err := s.LookupLink(ctx, 5)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if link.Username != "Dana" || link.DiscordUserID == nil || *link.DiscordUserID != userID {
		t.Fatalf("unexpected link %+v", link)
	}
}

func TestPurgeSessions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for id := 1; id <= 3; id++ {
		if err := s.CreateSession(ctx, id, "p", "ABCDEF"); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if err := s.PurgeSessions(ctx); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	for id := 1; id <= 3; id++ {
		if _, exists := s.Session(id); exists {
			t.Fatalf("session %d survived purge", id)
		}
	}
}
