package store

import (
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestMigrationsIdempotent runs Open twice on the same database and verifies
// the schema_version count stays correct (migration not re-applied).
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer s2.Close()

	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(v1) != len(v2) {
		t.Errorf("migration count changed: %d -> %d", len(v1), len(v2))
	}
}

// TestMigrationsOrdered verifies migrations are applied in ascending numeric order.
func TestMigrationsOrdered(t *testing.T) {
	s := openTestStore(t)

	versions, err := s.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(versions) == 0 {
		t.Fatal("expected at least one applied migration")
	}

	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Errorf("migrations not in ascending order: %v", versions)
			break
		}
	}
}

func TestPutRawOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.PutRaw("doc", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}
	if err := s.PutRaw("doc", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("PutRaw (overwrite): %v", err)
	}

	got, err := s.GetRaw("doc")
	if err != nil {
		t.Fatalf("GetRaw: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("GetRaw = %q, want %q", got, `{"v":2}`)
	}
}

func TestGetRawMissingKey(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.GetRaw("nope"); err != ErrNotFound {
		t.Errorf("GetRaw(missing) = %v, want ErrNotFound", err)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	s := openTestStore(t)

	if err := s.PutRaw("doc", []byte(`1`)); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}
	if err := s.Remove("doc"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	// Removing an already-removed key succeeds.
	if err := s.Remove("doc"); err != nil {
		t.Errorf("second Remove: %v", err)
	}
	if _, err := s.GetRaw("doc"); err != ErrNotFound {
		t.Errorf("GetRaw after Remove = %v, want ErrNotFound", err)
	}
}

func TestKeysSorted(t *testing.T) {
	s := openTestStore(t)

	for _, k := range []string{"tasks", "notes", "user"} {
		if err := s.PutRaw(k, []byte(`[]`)); err != nil {
			t.Fatalf("PutRaw(%q): %v", k, err)
		}
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	want := []string{"notes", "tasks", "user"}
	if len(keys) != len(want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := Put(s, "doc", doc{Name: "hello", Count: 3}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got := Load(s, "doc", doc{})
	if got.Name != "hello" || got.Count != 3 {
		t.Errorf("Load = %+v, want {hello 3}", got)
	}
}

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	s := openTestStore(t)

	got := Load(s, "missing", []string{"fallback"})
	if len(got) != 1 || got[0] != "fallback" {
		t.Errorf("Load(missing) = %v, want [fallback]", got)
	}
}

// TestLoadCorruptDocumentReturnsDefault verifies that an undecodable
// document is discarded instead of propagating an error.
func TestLoadCorruptDocumentReturnsDefault(t *testing.T) {
	s := openTestStore(t)

	if err := s.PutRaw("notes", []byte(`{not json`)); err != nil {
		t.Fatalf("PutRaw: %v", err)
	}

	got := Load(s, "notes", []int{})
	if len(got) != 0 {
		t.Errorf("Load(corrupt) = %v, want empty default", got)
	}
}

func TestCollectionKeysExcludeAppearance(t *testing.T) {
	for _, k := range CollectionKeys {
		if k == KeyTheme || k == KeyAccentColor || k == KeyUser {
			t.Errorf("CollectionKeys should not contain %q", k)
		}
	}
	if len(CollectionKeys) != 4 {
		t.Errorf("len(CollectionKeys) = %d, want 4", len(CollectionKeys))
	}
}
