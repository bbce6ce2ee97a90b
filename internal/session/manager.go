// Package session owns the current user identity and mediates every
// identity transition. Switching identity never namespaces storage: the
// four domain collections are global to the workspace and are wiped (and
// optionally reseeded) whenever the principal changes, so each "account"
// starts blank in this local-only model.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tekguyz/myplace/internal/demo"
	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

// State is the session lifecycle state.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateGuest         State = "guest"
	StateAnonymous     State = "anonymous"
)

// ErrNoSession is returned by CurrentUser when nobody is signed in.
var ErrNoSession = errors.New("no active session")

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Manager holds the current principal and persists it under the "user" key.
type Manager struct {
	store *store.Store
	clock Clock

	mu    sync.RWMutex
	state State
	user  *model.User
}

// NewManager creates an uninitialized Manager; call Init before use.
func NewManager(s *store.Store) *Manager {
	return &Manager{store: s, clock: realClock{}, state: StateUninitialized}
}

// NewManagerWithClock creates a Manager with a custom clock (for testing).
func NewManagerWithClock(s *store.Store, clock Clock) *Manager {
	return &Manager{store: s, clock: clock, state: StateUninitialized}
}

// Init reads any persisted identity. A missing or unparseable user record
// falls through to Anonymous rather than propagating as an error; the
// corrupt record, if any, is discarded.
func (m *Manager) Init() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateLoading

	raw, err := m.store.GetRaw(store.KeyUser)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("reading persisted identity", "error", err)
		}
		m.state = StateAnonymous
		return
	}

	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		slog.Warn("discarding unparseable persisted identity", "error", err)
		if err := m.store.Remove(store.KeyUser); err != nil {
			slog.Warn("removing persisted identity", "error", err)
		}
		m.state = StateAnonymous
		return
	}

	m.user = &u
	if u.IsGuest {
		m.state = StateGuest
	} else {
		m.state = StateAuthenticated
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns the signed-in principal, or ErrNoSession.
func (m *Manager) CurrentUser() (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return model.User{}, ErrNoSession
	}
	return *m.user, nil
}

// SignInWithGoogle mints the fixed mock Google user. There is no real OAuth
// in the local-only model. Any previously stored notes, tasks, recordings
// and projects are discarded before the new identity is persisted.
func (m *Manager) SignInWithGoogle() (model.User, error) {
	u := model.User{
		ID:      "google-123",
		Name:    "Alejandro U",
		Email:   "alejandro@tekguyz.com",
		IsGuest: false,
	}
	return u, m.become(u, false)
}

// SignUp mints a fresh user from the supplied fields. Input validation is
// the caller's concern; this layer enforces nothing beyond the wipe-then-
// persist contract.
func (m *Manager) SignUp(name, email string) (model.User, error) {
	u := model.User{
		ID:      model.NewID("user"),
		Name:    name,
		Email:   email,
		IsGuest: false,
	}
	return u, m.become(u, false)
}

// SignInWithEmail mints a mock user for the given email. A real app would
// fetch the account here.
func (m *Manager) SignInWithEmail(email string) (model.User, error) {
	u := model.User{
		ID:      model.NewID("user"),
		Name:    "Alejandro U",
		Email:   email,
		IsGuest: false,
	}
	return u, m.become(u, false)
}

// SignOut wipes the domain collections, removes the persisted identity and
// transitions to Anonymous.
func (m *Manager) SignOut() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.clearAppData(); err != nil {
		return err
	}
	if err := m.store.Remove(store.KeyUser); err != nil {
		return fmt.Errorf("removing persisted identity: %w", err)
	}
	m.user = nil
	m.state = StateAnonymous
	return nil
}

// LoadDemoData wipes the domain collections, seeds the demo fixtures and
// signs in as a guest.
func (m *Manager) LoadDemoData() (model.User, error) {
	u := model.User{
		ID:      model.NewID("guest"),
		Name:    "Guest User",
		Email:   "Viewing Demo",
		IsGuest: true,
	}
	return u, m.become(u, true)
}

// become performs the shared wipe-then-persist identity transition.
func (m *Manager) become(u model.User, seed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.clearAppData(); err != nil {
		return err
	}
	if seed {
		if err := demo.Seed(m.store, m.clock.Now()); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}
	if err := store.Put(m.store, store.KeyUser, u); err != nil {
		return fmt.Errorf("persisting identity: %w", err)
	}

	m.user = &u
	if u.IsGuest {
		m.state = StateGuest
	} else {
		m.state = StateAuthenticated
	}
	return nil
}

// clearAppData removes the four domain collections. Callers hold m.mu.
func (m *Manager) clearAppData() error {
	for _, key := range store.CollectionKeys {
		if err := m.store.Remove(key); err != nil {
			return fmt.Errorf("clearing %s: %w", key, err)
		}
	}
	return nil
}
