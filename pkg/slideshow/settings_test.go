package slideshow

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	got := store.Load()
	assert.Equal(t, DefaultSettings(), got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"))

	saved := Settings{
		Sources: []Source{
			{Path: "/pics/walls", IncludeSubfolders: true},
			{Path: "/pics/extra"},
		},
		SingleImage:   "/pics/pinned.png",
		Policy:        PolicySequential,
		IntervalSecs:  90,
		AutoRotate:    false,
		SmartFit:      true,
		Style:         StyleSpan,
		Running:       true,
		LastShown:     "/pics/walls/a.jpg",
		Cursor:        4,
		ChangeOnStart: true,
		RunOnStartup:  true,
	}
	require.NoError(t, store.Save(saved))

	assert.Equal(t, saved, store.Load())
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0644))

	got := NewStore(path).Load()
	assert.Equal(t, DefaultSettings(), got)
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	doc := `{"policy": "sequential", "interval_secs": 42, "some_future_field": {"a": 1}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	got := NewStore(path).Load()
	assert.Equal(t, PolicySequential, got.Policy)
	assert.Equal(t, int64(42), got.IntervalSecs)
	// Missing fields keep their defaults.
	assert.Equal(t, StyleFill, got.Style)
	assert.Equal(t, -1, got.Cursor)
}

func TestLoadSanitizesOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	doc := `{"policy": "chaotic", "style": "mosaic", "interval_secs": 0, "cursor": -9}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	got := NewStore(path).Load()
	assert.Equal(t, PolicyRandom, got.Policy)
	assert.Equal(t, StyleFill, got.Style)
	assert.Equal(t, int64(DefaultIntervalSecs), got.IntervalSecs)
	assert.Equal(t, -1, got.Cursor)
	assert.NotNil(t, got.Sources)
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "settings.json")
	store := NewStore(path)
	require.NoError(t, store.Save(DefaultSettings()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "settings.json"))
	require.NoError(t, store.Save(DefaultSettings()))
	require.NoError(t, store.Save(DefaultSettings()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.json", entries[0].Name())
}

func TestClearResetsToDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"))

	custom := DefaultSettings()
	custom.Policy = PolicySequential
	custom.LastShown = "/pics/a.jpg"
	require.NoError(t, store.Save(custom))

	require.NoError(t, store.Clear())
	assert.Equal(t, DefaultSettings(), store.Load())
}

func TestIntervalClampsToMinimum(t *testing.T) {
	s := Settings{IntervalSecs: 0}
	assert.Equal(t, MinInterval, s.Interval())

	s.IntervalSecs = 600
	assert.Equal(t, 600*time.Second, s.Interval())
}

func TestStoreDetectsExternalWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewStore(path)

	// A load of a missing file and this store's own save are not external.
	store.Load()
	assert.False(t, store.Modified())
	require.NoError(t, store.Save(DefaultSettings()))
	assert.False(t, store.Modified())

	// A write through another store, as another process would do, is.
	other := NewStore(path)
	changed := other.Load()
	changed.IntervalSecs = 30
	require.NoError(t, other.Save(changed))
	assert.True(t, store.Modified())

	// Reading the file syncs this store up again.
	assert.Equal(t, int64(30), store.Load().IntervalSecs)
	assert.False(t, store.Modified())
}
