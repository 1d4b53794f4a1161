package player

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/emberfell/mud/internal/auth"
	"github.com/emberfell/mud/internal/engine"
	"github.com/emberfell/mud/internal/persist"
	"github.com/emberfell/mud/internal/storage"
	"github.com/emberfell/mud/internal/world"
)

type nullPublisher struct{}

func (nullPublisher) PublishToRoom(string, []string, []byte) error { return nil }
func (nullPublisher) PublishToPlayer(string, []byte) error         { return nil }

func writeAsset(t *testing.T, dir, id, spec string) {
	t.Helper()

	data := `{"version":1,"id":"` + id + `","spec":` + spec + `}`
	if err := os.WriteFile(filepath.Join(dir, id+".json"), []byte(data), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func testFlow(t *testing.T) (*loginFlow, *persist.Store) {
	t.Helper()

	roomDir := t.TempDir()
	writeAsset(t, roomDir, "spawn", `{"name":"Town Square","description":"A bustling square."}`)
	rooms, err := storage.NewFileStore[*world.Room](roomDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := storage.NewFileStore[*world.Item](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	catalog, err := world.NewCatalog(rooms, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	players, err := storage.NewFileStore[*persist.PlayerRecord](t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat, err := persist.OpenChatLog(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { chat.Close() })
	store := persist.NewStore(players, chat)

	eng, err := engine.NewEngine(catalog, store, auth.NewRegistry(), nullPublisher{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &loginFlow{engine: eng, gateway: store}, store
}

func TestLoginFlow_RegisterAndLogin(t *testing.T) {
	flow, store := testFlow(t)

	conn := newFakeConn("alice\ny\npassword123\npassword123\n")

	token, username, welcome, err := flow.Run(conn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "username", username, "alice")
	if token == "" {
		t.Error("expected a session token")
	}
	for _, want := range []string{"Welcome, alice!", "Role: Player", "Town Square"} {
		if !strings.Contains(welcome, want) {
			t.Errorf("welcome missing %q:\n%s", want, welcome)
		}
	}
	testutil.AssertEqual(t, "account created", store.PlayerExists("alice"), true)

	room, _ := store.Room("alice")
	testutil.AssertEqual(t, "spawn assigned", room, "spawn")
}

func TestLoginFlow_ExistingAccount(t *testing.T) {
	flow, store := testFlow(t)
	if err := store.CreatePlayer("bob", "password123", "player"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conn := newFakeConn("bob\nwrong\npassword123\n")

	_, username, _, err := flow.Run(conn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "username", username, "bob")
	if !strings.Contains(conn.out.String(), "Wrong password.") {
		t.Errorf("retry notice not shown:\n%s", conn.out.String())
	}
}

func TestLoginFlow_PasswordMismatchRetries(t *testing.T) {
	flow, _ := testFlow(t)

	conn := newFakeConn("carol\nyes\npassword123\ndifferent1\npassword123\npassword123\n")

	_, username, _, err := flow.Run(conn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "username", username, "carol")
	if !strings.Contains(conn.out.String(), "Passwords do not match") {
		t.Errorf("mismatch notice not shown:\n%s", conn.out.String())
	}
}

func TestLoginFlow_DeclineRegistration(t *testing.T) {
	flow, store := testFlow(t)
	if err := store.CreatePlayer("dave", "password123", "player"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Decline creating 'eve', then log in as dave
	conn := newFakeConn("eve\nn\ndave\npassword123\n")

	_, username, _, err := flow.Run(conn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "username", username, "dave")
	testutil.AssertEqual(t, "no stray account", store.PlayerExists("eve"), false)
}
