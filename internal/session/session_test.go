package session

import (
	"testing"

	"github.com/mholtz/tote/internal/localstore"
	"github.com/mholtz/tote/internal/shopapi"
)

func testDir(t *testing.T) localstore.Dir {
	t.Helper()
	dir, err := localstore.NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	return dir
}

func TestNewMintsStableClientID(t *testing.T) {
	dir := testDir(t)

	first := New(dir)
	id := first.ClientID()
	if id == "" {
		t.Fatal("ClientID is empty")
	}

	second := New(dir)
	if got := second.ClientID(); got != id {
		t.Errorf("ClientID = %q after restore, want %q", got, id)
	}
}

func TestLoginLogoutLifecycle(t *testing.T) {
	sess := New(testDir(t))
	if sess.IsAuthenticated() {
		t.Fatal("IsAuthenticated = true for fresh session, want false")
	}

	identity := shopapi.Identity{ID: "u1", Name: "Alice", Email: "a@b.c"}
	sess.Login("tok-1", identity)

	if !sess.IsAuthenticated() {
		t.Error("IsAuthenticated = false after Login, want true")
	}
	if got := sess.Token(); got != "tok-1" {
		t.Errorf("Token = %q, want %q", got, "tok-1")
	}
	if got, ok := sess.Identity(); !ok || got.Name != "Alice" {
		t.Errorf("Identity = %+v ok=%v, want Alice", got, ok)
	}

	sess.Logout()
	if sess.IsAuthenticated() {
		t.Error("IsAuthenticated = true after Logout, want false")
	}
	if _, ok := sess.Identity(); ok {
		t.Error("Identity ok = true after Logout, want false")
	}
	if sess.ClientID() == "" {
		t.Error("ClientID cleared by Logout, want it kept")
	}
}

func TestRestorePersistedSession(t *testing.T) {
	dir := testDir(t)

	first := New(dir)
	first.Login("tok-2", shopapi.Identity{ID: "u2", Name: "Bob"})

	second := New(dir)
	if !second.IsAuthenticated() {
		t.Error("IsAuthenticated = false after restore, want true")
	}
	if got, ok := second.Identity(); !ok || got.ID != "u2" {
		t.Errorf("Identity = %+v ok=%v, want u2", got, ok)
	}
}

func TestSubscribersRunOnTransitions(t *testing.T) {
	sess := New(testDir(t))

	calls := 0
	sess.Subscribe(func() { calls++ })

	sess.Login("tok-3", shopapi.Identity{ID: "u3"})
	if calls != 1 {
		t.Fatalf("calls = %d after Login, want 1", calls)
	}

	sess.Logout()
	if calls != 2 {
		t.Fatalf("calls = %d after Logout, want 2", calls)
	}
}
