package auth

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestRegistry_CreateResolveDestroy(t *testing.T) {
	r := NewRegistry()

	token, err := r.Create("alice", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	// Resolve returns the same pair on every call until destroyed
	for i := 0; i < 3; i++ {
		username, role, err := r.Resolve(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "username", username, "alice")
		testutil.AssertEqual(t, "role", role, RoleAdmin)
	}

	r.Destroy(token)

	_, _, err = r.Resolve(token)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	// Destroy is idempotent
	r.Destroy(token)
}

func TestRegistry_ResolveUnknownToken(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Resolve("no-such-token")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRegistry_LastActiveMonotone(t *testing.T) {
	r := NewRegistry()
	current := time.Unix(1000, 0)
	r.now = func() time.Time { return current }

	token, err := r.Create("alice", RolePlayer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev, ok := r.LastActive(token)
	testutil.AssertEqual(t, "found", ok, true)

	for i := 0; i < 5; i++ {
		current = current.Add(time.Second)
		if _, _, err := r.Resolve(token); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := r.LastActive(token)
		if got.Before(prev) {
			t.Fatalf("last-active went backwards: %v -> %v", prev, got)
		}
		prev = got
	}
}

func TestRegistry_DestroyUser(t *testing.T) {
	r := NewRegistry()

	t1, _ := r.Create("alice", RolePlayer)
	t2, _ := r.Create("alice", RolePlayer)
	t3, _ := r.Create("bob", RolePlayer)

	testutil.AssertEqual(t, "dropped", r.DestroyUser("alice"), 2)
	testutil.AssertEqual(t, "alice online", r.IsOnline("alice"), false)
	testutil.AssertEqual(t, "bob online", r.IsOnline("bob"), true)

	for _, token := range []string{t1, t2} {
		if _, _, err := r.Resolve(token); err == nil {
			t.Error("expected alice's tokens to be gone")
		}
	}
	if _, _, err := r.Resolve(t3); err != nil {
		t.Errorf("bob's token should survive: %v", err)
	}
}

func TestRegistry_CaseInsensitiveAccounts(t *testing.T) {
	r := NewRegistry()

	token, err := r.Create("Bob", RolePlayer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	username, _, err := r.Resolve(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "stored name", username, "bob")

	testutil.AssertEqual(t, "lower lookup", r.IsOnline("bob"), true)
	testutil.AssertEqual(t, "typed lookup", r.IsOnline("Bob"), true)
	testutil.AssertEqual(t, "upper lookup", r.IsOnline("BOB"), true)

	// A second login with different casing is still the same account
	if _, err := r.Create("BOB", RolePlayer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.Active()
	testutil.AssertEqual(t, "active count", len(got), 1)
	testutil.AssertEqual(t, "active name", got[0], "bob")

	testutil.AssertEqual(t, "dropped", r.DestroyUser("Bob"), 2)
	testutil.AssertEqual(t, "online after", r.IsOnline("bob"), false)
}

func TestRegistry_ActiveDeduplicates(t *testing.T) {
	r := NewRegistry()

	r.Create("bob", RolePlayer)
	r.Create("alice", RolePlayer)
	r.Create("alice", RolePlayer)

	got := r.Active()
	testutil.AssertEqual(t, "active count", len(got), 2)
	testutil.AssertEqual(t, "first", got[0], "alice")
	testutil.AssertEqual(t, "second", got[1], "bob")
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := r.Create("alice", RolePlayer)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if _, _, err := r.Resolve(token); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			r.IsOnline("alice")
			r.Active()
			r.Destroy(token)
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, "online after teardown", r.IsOnline("alice"), false)
}
