package repositories

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tracklift/tracklift/internal/models"
	itesting "github.com/tracklift/tracklift/internal/testing"
)

func testState() *models.TransferState {
	return &models.TransferState{
		PlaylistID: "dest1",
		Processed:  []string{"One", "Two"},
		Remaining: []models.Track{
			{Name: "Three", Artists: []string{"C"}},
			{Name: "Four", Artists: []string{"D"}},
		},
	}
}

func TestFileProgressStore(t *testing.T) {
	t.Run("save and load roundtrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "progress.json")
		store := NewFileProgressStore(path)

		if err := store.Save(testState()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		itesting.AssertFileExists(t, path)

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if loaded == nil {
			t.Fatal("Load() returned nil state")
		}

		if loaded.PlaylistID != "dest1" {
			t.Errorf("PlaylistID = %q, want dest1", loaded.PlaylistID)
		}
		if len(loaded.Processed) != 2 || loaded.Processed[1] != "Two" {
			t.Errorf("Processed = %v", loaded.Processed)
		}
		if len(loaded.Remaining) != 2 || loaded.Remaining[0].Name != "Three" {
			t.Errorf("Remaining = %v", loaded.Remaining)
		}
	})

	t.Run("file format uses snake_case keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "progress.json")
		store := NewFileProgressStore(path)

		if err := store.Save(testState()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		content := itesting.MustReadFile(t, path)
		for _, key := range []string{"playlist_id", "processed_tracks", "remaining_tracks"} {
			if !strings.Contains(content, key) {
				t.Errorf("progress file missing key %q", key)
			}
		}
	})

	t.Run("load missing file returns nil", func(t *testing.T) {
		store := NewFileProgressStore(filepath.Join(t.TempDir(), "absent.json"))

		state, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if state != nil {
			t.Errorf("state = %v, want nil", state)
		}
	})

	t.Run("load corrupt file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "progress.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := NewFileProgressStore(path).Load(); err == nil {
			t.Error("Load() should fail on corrupt data")
		}
	})

	t.Run("load rejects record without playlist ID", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "progress.json")
		if err := os.WriteFile(path, []byte(`{"processed_tracks":[]}`), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := NewFileProgressStore(path).Load(); err == nil {
			t.Error("Load() should reject a record without a playlist ID")
		}
	})

	t.Run("save overwrites previous record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "progress.json")
		store := NewFileProgressStore(path)

		if err := store.Save(testState()); err != nil {
			t.Fatal(err)
		}

		next := testState()
		next.Processed = append(next.Processed, "Three")
		next.Remaining = next.Remaining[1:]
		if err := store.Save(next); err != nil {
			t.Fatal(err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatal(err)
		}
		if len(loaded.Processed) != 3 || len(loaded.Remaining) != 1 {
			t.Errorf("Processed = %v, Remaining = %v", loaded.Processed, loaded.Remaining)
		}
	})

	t.Run("save rejects nil state", func(t *testing.T) {
		store := NewFileProgressStore(filepath.Join(t.TempDir(), "progress.json"))
		if err := store.Save(nil); err == nil {
			t.Error("Save(nil) should fail")
		}
	})

	t.Run("clear removes the record", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "progress.json")
		store := NewFileProgressStore(path)

		if err := store.Save(testState()); err != nil {
			t.Fatal(err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		itesting.AssertFileMissing(t, path)

		// Clearing again is a no-op.
		if err := store.Clear(); err != nil {
			t.Errorf("Clear() on missing file error = %v", err)
		}
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		store := NewFileProgressStore(filepath.Join(dir, "progress.json"))

		for range 3 {
			if err := store.Save(testState()); err != nil {
				t.Fatal(err)
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("dir entries = %d, want only the progress file", len(entries))
		}
	})
}
