package session

import (
	"testing"
	"time"

	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	clock := fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewManagerWithClock(s, clock), s
}

func TestInit_EmptyStore(t *testing.T) {
	m, _ := newTestManager(t)

	m.Init()
	if m.State() != StateAnonymous {
		t.Errorf("state = %q, want anonymous", m.State())
	}
	if _, err := m.CurrentUser(); err != ErrNoSession {
		t.Errorf("CurrentUser = %v, want ErrNoSession", err)
	}
}

func TestInit_RestoresPersistedUser(t *testing.T) {
	m, s := newTestManager(t)

	u := model.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"}
	if err := store.Put(s, store.KeyUser, u); err != nil {
		t.Fatalf("Put user: %v", err)
	}

	m.Init()
	if m.State() != StateAuthenticated {
		t.Errorf("state = %q, want authenticated", m.State())
	}
	got, err := m.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got.ID != "user-1" || got.Name != "Ada" {
		t.Errorf("CurrentUser = %+v, want user-1/Ada", got)
	}
}

func TestInit_RestoresGuestState(t *testing.T) {
	m, s := newTestManager(t)

	u := model.User{ID: "guest-1", Name: "Guest User", Email: "Viewing Demo", IsGuest: true}
	if err := store.Put(s, store.KeyUser, u); err != nil {
		t.Fatalf("Put user: %v", err)
	}

	m.Init()
	if m.State() != StateGuest {
		t.Errorf("state = %q, want guest", m.State())
	}
}

// TestInit_CorruptUserRecord verifies an unparseable persisted identity is
// discarded and the session falls through to anonymous.
func TestInit_CorruptUserRecord(t *testing.T) {
	m, s := newTestManager(t)

	if err := s.PutRaw(store.KeyUser, []byte(`{broken`)); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}

	m.Init()
	if m.State() != StateAnonymous {
		t.Errorf("state = %q, want anonymous", m.State())
	}
	if _, err := s.GetRaw(store.KeyUser); err != store.ErrNotFound {
		t.Errorf("corrupt record should have been removed, GetRaw = %v", err)
	}
}

func TestInit_EmptyUserIDTreatedAsCorrupt(t *testing.T) {
	m, s := newTestManager(t)

	if err := s.PutRaw(store.KeyUser, []byte(`{"name":"Nobody"}`)); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}

	m.Init()
	if m.State() != StateAnonymous {
		t.Errorf("state = %q, want anonymous", m.State())
	}
}

func TestSignInWithGoogle(t *testing.T) {
	m, _ := newTestManager(t)
	m.Init()

	u, err := m.SignInWithGoogle()
	if err != nil {
		t.Fatalf("SignInWithGoogle: %v", err)
	}
	if u.ID != "google-123" {
		t.Errorf("user id = %q, want google-123", u.ID)
	}
	if u.IsGuest {
		t.Error("google user should not be a guest")
	}
	if m.State() != StateAuthenticated {
		t.Errorf("state = %q, want authenticated", m.State())
	}
}

// TestIdentitySwitchWipesCollections is the core invariant: switching
// identity discards the previous account's notes, tasks, recordings and
// projects, since collections are global in the local-only model.
func TestIdentitySwitchWipesCollections(t *testing.T) {
	m, s := newTestManager(t)
	m.Init()

	if _, err := m.SignUp("Ada", "ada@example.com"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	notes := []model.Note{{ID: "note-1", Title: "keep out"}}
	if err := store.Put(s, store.KeyNotes, notes); err != nil {
		t.Fatalf("Put notes: %v", err)
	}
	tasks := []model.Task{{ID: "task-1", Content: "gone soon", Status: model.StatusToDo}}
	if err := store.Put(s, store.KeyTasks, tasks); err != nil {
		t.Fatalf("Put tasks: %v", err)
	}

	if _, err := m.SignInWithEmail("other@example.com"); err != nil {
		t.Fatalf("SignInWithEmail: %v", err)
	}

	for _, key := range store.CollectionKeys {
		if _, err := s.GetRaw(key); err != store.ErrNotFound {
			t.Errorf("collection %q survived identity switch (err=%v)", key, err)
		}
	}
}

// TestIdentitySwitchKeepsAppearance verifies theme and accent settings
// survive identity transitions.
func TestIdentitySwitchKeepsAppearance(t *testing.T) {
	m, s := newTestManager(t)
	m.Init()

	if err := store.Put(s, store.KeyTheme, "dark"); err != nil {
		t.Fatalf("Put theme: %v", err)
	}

	if _, err := m.SignInWithGoogle(); err != nil {
		t.Fatalf("SignInWithGoogle: %v", err)
	}
	if err := m.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	theme := store.Load(s, store.KeyTheme, "")
	if theme != "dark" {
		t.Errorf("theme = %q, want dark", theme)
	}
}

func TestSignOut(t *testing.T) {
	m, s := newTestManager(t)
	m.Init()

	if _, err := m.SignInWithGoogle(); err != nil {
		t.Fatalf("SignInWithGoogle: %v", err)
	}
	if err := m.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	if m.State() != StateAnonymous {
		t.Errorf("state = %q, want anonymous", m.State())
	}
	if _, err := m.CurrentUser(); err != ErrNoSession {
		t.Errorf("CurrentUser after SignOut = %v, want ErrNoSession", err)
	}
	if _, err := s.GetRaw(store.KeyUser); err != store.ErrNotFound {
		t.Errorf("persisted identity should be removed, GetRaw = %v", err)
	}
}

func TestLoadDemoData(t *testing.T) {
	m, s := newTestManager(t)
	m.Init()

	u, err := m.LoadDemoData()
	if err != nil {
		t.Fatalf("LoadDemoData: %v", err)
	}
	if !u.IsGuest {
		t.Error("demo user should be a guest")
	}
	if u.Name != "Guest User" || u.Email != "Viewing Demo" {
		t.Errorf("demo user = %+v, want Guest User / Viewing Demo", u)
	}
	if m.State() != StateGuest {
		t.Errorf("state = %q, want guest", m.State())
	}

	notes := store.Load(s, store.KeyNotes, []model.Note{})
	if len(notes) == 0 {
		t.Error("expected seeded demo notes")
	}
	projects := store.Load(s, store.KeyProjects, []model.Project{})
	if len(projects) == 0 {
		t.Error("expected seeded demo projects")
	}
}

// TestDemoAfterSignIn verifies loading the demo replaces a signed-in
// account's data entirely.
func TestDemoAfterSignIn(t *testing.T) {
	m, s := newTestManager(t)
	m.Init()

	if _, err := m.SignUp("Ada", "ada@example.com"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if err := store.Put(s, store.KeyNotes, []model.Note{{ID: "mine", Title: "private"}}); err != nil {
		t.Fatalf("Put notes: %v", err)
	}

	if _, err := m.LoadDemoData(); err != nil {
		t.Fatalf("LoadDemoData: %v", err)
	}

	notes := store.Load(s, store.KeyNotes, []model.Note{})
	for _, n := range notes {
		if n.ID == "mine" {
			t.Error("pre-demo note survived the wipe")
		}
	}
}

func TestSignUpGeneratesUniqueIDs(t *testing.T) {
	m, _ := newTestManager(t)
	m.Init()

	u1, err := m.SignUp("A", "a@example.com")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	u2, err := m.SignUp("B", "b@example.com")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if u1.ID == u2.ID {
		t.Errorf("expected distinct user ids, both %q", u1.ID)
	}
}
