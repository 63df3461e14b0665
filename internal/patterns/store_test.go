package patterns_test

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/ce-dot-net/acetrail/internal/patterns"
)

func newStore(t *testing.T) *patterns.Store {
	t.Helper()
	store, err := patterns.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestLoadMissingSession(t *testing.T) {
	store := newStore(t)
	if ids := store.Load("nope"); len(ids) != 0 {
		t.Errorf("expected empty list for missing session, got %v", ids)
	}
}

func TestLoadCorruptFileDegradesToEmpty(t *testing.T) {
	store := newStore(t)
	path := filepath.Join(store.Dir, "patterns-used-sess.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ids := store.Load("sess"); len(ids) != 0 {
		t.Errorf("expected empty list for corrupt state, got %v", ids)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)
	want := []string{"pat-3", "pat-1", "pat-2"}
	if err := store.Save("sess", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.Load("sess"); !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %v, want %v (order must be preserved)", got, want)
	}

	// Full-file overwrite semantics.
	if err := store.Save("sess", []string{"pat-9"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.Load("sess"); !reflect.DeepEqual(got, []string{"pat-9"}) {
		t.Errorf("Load after overwrite = %v", got)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	store := newStore(t)
	if err := store.Append("a", "pat-1"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append("b", "pat-2"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got := store.Load("a"); !reflect.DeepEqual(got, []string{"pat-1"}) {
		t.Errorf("session a = %v", got)
	}
	if got := store.Load("b"); !reflect.DeepEqual(got, []string{"pat-2"}) {
		t.Errorf("session b = %v", got)
	}
}

// Idempotence: appending any sequence of IDs yields each distinct ID exactly
// once, in order of first appearance, however often IDs repeat.
func TestAppendIdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dir, err := os.MkdirTemp("", "patterns")
		if err != nil {
			t.Fatalf("MkdirTemp: %v", err)
		}
		defer os.RemoveAll(dir)
		store, err := patterns.NewStore(dir)
		if err != nil {
			t.Fatalf("NewStore: %v", err)
		}

		n := rapid.IntRange(1, 30).Draw(t, "n")
		var appended []string
		for i := 0; i < n; i++ {
			// Small alphabet forces repeats.
			id := fmt.Sprintf("pat-%d", rapid.IntRange(0, 5).Draw(t, fmt.Sprintf("id%d", i)))
			appended = append(appended, id)
			if err := store.Append("sess", id); err != nil {
				t.Fatalf("Append: %v", err)
			}
		}

		var want []string
		seen := make(map[string]bool)
		for _, id := range appended {
			if !seen[id] {
				seen[id] = true
				want = append(want, id)
			}
		}

		if got := store.Load("sess"); !reflect.DeepEqual(got, want) {
			t.Fatalf("Load = %v, want %v", got, want)
		}
	})
}
