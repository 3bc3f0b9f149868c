package repository

import (
	"fmt"
	"testing"
	"time"

	"voicechat-backend/models"
)

func msg(id, sender, text string) models.ChatMessage {
	return models.ChatMessage{ID: id, SenderID: sender, Text: text, Time: time.Now()}
}

func TestGetOrCreateIdempotent(t *testing.T) {
	repo := NewInMemoryRoomRepo(100)
	first := repo.GetOrCreate("alice", "bob")
	second := repo.GetOrCreate("bob", "alice")
	if first.ID != second.ID {
		t.Fatalf("room ids differ: %q vs %q", first.ID, second.ID)
	}
	if first != second {
		t.Fatal("repeated GetOrCreate should return the same room")
	}
}

func TestAppendPrivateUnknownRoom(t *testing.T) {
	repo := NewInMemoryRoomRepo(100)
	if err := repo.AppendPrivate("no-such-room", msg("m1", "alice", "hi")); err == nil {
		t.Error("expected error appending to unknown room")
	}
}

func TestPrivateHistoryBoundAndOrder(t *testing.T) {
	repo := NewInMemoryRoomRepo(500)
	room := repo.GetOrCreate("alice", "bob")
	for i := 0; i < 150; i++ {
		if err := repo.AppendPrivate(room.ID, msg(fmt.Sprintf("m%03d", i), "alice", "x")); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	history, err := repo.PrivateHistory(room.ID, 100)
	if err != nil {
		t.Fatalf("PrivateHistory: %v", err)
	}
	if len(history) != 100 {
		t.Fatalf("history length = %d, want 100", len(history))
	}
	if history[0].ID != "m050" || history[99].ID != "m149" {
		t.Errorf("history window wrong: first=%s last=%s", history[0].ID, history[99].ID)
	}
	for i := 1; i < len(history); i++ {
		if history[i].ID < history[i-1].ID {
			t.Fatalf("history out of order at %d", i)
		}
	}
}

func TestGeneralHistoryBound(t *testing.T) {
	repo := NewInMemoryRoomRepo(500)
	for i := 0; i < 80; i++ {
		repo.AppendGeneral(msg(fmt.Sprintf("g%03d", i), "alice", "x"))
	}

	history := repo.GeneralHistory(50)
	if len(history) != 50 {
		t.Fatalf("general history length = %d, want 50", len(history))
	}
	if history[0].ID != "g030" || history[49].ID != "g079" {
		t.Errorf("general window wrong: first=%s last=%s", history[0].ID, history[49].ID)
	}
}

func TestRetentionCapsStoredLog(t *testing.T) {
	repo := NewInMemoryRoomRepo(10)
	for i := 0; i < 25; i++ {
		repo.AppendGeneral(msg(fmt.Sprintf("g%03d", i), "alice", "x"))
	}

	// Asking for more than retained still returns at most the retained tail.
	history := repo.GeneralHistory(100)
	if len(history) != 10 {
		t.Fatalf("retained length = %d, want 10", len(history))
	}
	if history[0].ID != "g015" {
		t.Errorf("oldest retained = %s, want g015", history[0].ID)
	}
}
