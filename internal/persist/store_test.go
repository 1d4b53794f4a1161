package persist

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/emberfell/mud/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	players, err := storage.NewFileStore[*PlayerRecord](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat, err := OpenChatLog(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { chat.Close() })

	return NewStore(players, chat)
}

func TestStore_CreateAndVerifyPlayer(t *testing.T) {
	s := newTestStore(t)

	err := s.CreatePlayer("Alice", "hunter2hunter2", "player")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "exists", s.PlayerExists("alice"), true)
	testutil.AssertEqual(t, "exists mixed case", s.PlayerExists("ALICE"), true)
	testutil.AssertEqual(t, "missing", s.PlayerExists("bob"), false)

	testutil.AssertEqual(t, "good password", s.VerifyPassword("alice", "hunter2hunter2"), true)
	testutil.AssertEqual(t, "bad password", s.VerifyPassword("alice", "wrong"), false)
	testutil.AssertEqual(t, "unknown player", s.VerifyPassword("bob", "hunter2hunter2"), false)

	testutil.AssertEqual(t, "active", s.IsActive("alice"), true)

	role, ok := s.Role("alice")
	testutil.AssertEqual(t, "role found", ok, true)
	testutil.AssertEqual(t, "role", role, "player")
}

func TestStore_CreatePlayerDuplicate(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreatePlayer("alice", "password123", "player"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.CreatePlayer("Alice", "password123", "player"); err == nil {
		t.Error("expected error for duplicate username")
	}
}

func TestStore_RoleAndActiveMutation(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreatePlayer("alice", "password123", "player"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.SetRole("alice", "admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	role, _ := s.Role("alice")
	testutil.AssertEqual(t, "role", role, "admin")

	if err := s.SetActive("alice", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "active", s.IsActive("alice"), false)

	if err := s.SetRole("ghost", "admin"); err == nil {
		t.Error("expected error for unknown player")
	}
}

func TestStore_RoomAssignment(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreatePlayer("alice", "password123", "player"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, ok := s.Room("alice")
	testutil.AssertEqual(t, "room before assignment", ok, false)

	if err := s.SetRoom("alice", "spawn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	room, ok := s.Room("alice")
	testutil.AssertEqual(t, "room found", ok, true)
	testutil.AssertEqual(t, "room", room, "spawn")
}

func TestStore_Inventory(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreatePlayer("alice", "password123", "player"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv, err := s.Inventory("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "empty inventory", len(inv), 0)

	if err := s.SetInventory("alice", []string{"sword", "lantern"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv, err = s.Inventory("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "inventory size", len(inv), 2)

	// The returned slice is a copy
	inv[0] = "mutated"
	inv2, _ := s.Inventory("alice")
	testutil.AssertEqual(t, "first item", inv2[0], "sword")
}

func TestChatLog_VisibilityFilter(t *testing.T) {
	s := newTestStore(t)

	appends := []struct {
		sender, text, recipient string
	}{
		{"alice", "hello room", ""},
		{"bob", "hi alice", ""},
		{"alice", "psst bob", "bob"},
		{"bob", "secret for carol", "carol"},
	}
	for _, a := range appends {
		if err := s.AppendMessage("spawn", a.sender, a.text, a.recipient); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tests := map[string]struct {
		viewer   string
		expTexts []string
	}{
		"sender sees own whispers": {
			viewer:   "alice",
			expTexts: []string{"hello room", "hi alice", "psst bob"},
		},
		"recipient sees whisper": {
			viewer:   "bob",
			expTexts: []string{"hello room", "hi alice", "psst bob", "secret for carol"},
		},
		"bystander sees only room messages": {
			viewer:   "dave",
			expTexts: []string{"hello room", "hi alice"},
		},
		"whisper target outside conversation": {
			viewer:   "carol",
			expTexts: []string{"hello room", "hi alice", "secret for carol"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			msgs, err := s.Messages("spawn", 20, tt.viewer)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "message count", len(msgs), len(tt.expTexts))
			for i, text := range tt.expTexts {
				testutil.AssertEqual(t, "message text", msgs[i].Text, text)
			}
		})
	}
}

func TestChatLog_AppendBatch(t *testing.T) {
	s := newTestStore(t)

	err := s.AppendMessages([]ChatMessage{
		{RoomId: "spawn", Sender: "alice", Text: "alice leaves north."},
		{RoomId: "forest", Sender: "alice", Text: "alice arrives from south."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spawn, err := s.Messages("spawn", 20, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "spawn count", len(spawn), 1)
	testutil.AssertEqual(t, "spawn text", spawn[0].Text, "alice leaves north.")

	forest, err := s.Messages("forest", 20, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "forest count", len(forest), 1)
	testutil.AssertEqual(t, "forest text", forest[0].Text, "alice arrives from south.")

	// Empty batches are a no-op, not an error
	if err := s.AppendMessages(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChatLog_AppendBatchAfterClose(t *testing.T) {
	players, err := storage.NewFileStore[*PlayerRecord](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat, err := OpenChatLog(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := NewStore(players, chat)
	chat.Close()

	err = s.AppendMessages([]ChatMessage{
		{RoomId: "spawn", Sender: "alice", Text: "one"},
		{RoomId: "forest", Sender: "alice", Text: "two"},
	})
	if err == nil {
		t.Fatal("expected error after close")
	}
}

func TestChatLog_LimitReturnsNewest(t *testing.T) {
	s := newTestStore(t)

	for _, text := range []string{"one", "two", "three", "four"} {
		if err := s.AppendMessage("spawn", "alice", text, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	msgs, err := s.Messages("spawn", 2, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "message count", len(msgs), 2)
	testutil.AssertEqual(t, "oldest of window", msgs[0].Text, "three")
	testutil.AssertEqual(t, "newest", msgs[1].Text, "four")
}

func TestChatLog_RoomScoping(t *testing.T) {
	s := newTestStore(t)

	if err := s.AppendMessage("spawn", "alice", "in spawn", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AppendMessage("forest", "bob", "in forest", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs, err := s.Messages("forest", 20, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "message count", len(msgs), 1)
	testutil.AssertEqual(t, "text", msgs[0].Text, "in forest")
	if msgs[0].CreatedAt.After(time.Now().Add(time.Minute)) {
		t.Error("created_at should be in the past")
	}
}

func TestStore_TickPrunesChat(t *testing.T) {
	players, err := storage.NewFileStore[*PlayerRecord](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat, err := OpenChatLog(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { chat.Close() })

	s := NewStore(players, chat, WithChatRetention(2))

	for _, text := range []string{"one", "two", "three"} {
		if err := s.AppendMessage("spawn", "alice", text, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// A second room should be unaffected by spawn's overflow
	if err := s.AppendMessage("forest", "bob", "still here", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs, err := s.Messages("spawn", 20, "carol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "spawn count", len(msgs), 2)
	testutil.AssertEqual(t, "oldest survivor", msgs[0].Text, "two")

	forest, err := s.Messages("forest", 20, "carol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "forest count", len(forest), 1)
}
