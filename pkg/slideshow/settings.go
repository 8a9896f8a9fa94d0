package slideshow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dixieflatline76/Easel/util/log"
)

// Settings is the persisted slideshow state: the configured sources, the
// rotation options, and the resume position. It is saved after every
// mutation and after every successful rotation so last-shown and cursor
// survive a crash.
type Settings struct {
	Sources      []Source `json:"sources"`
	SingleImage  string   `json:"single_image,omitempty"`
	Policy       Policy   `json:"policy"`
	IntervalSecs int64    `json:"interval_secs"`
	AutoRotate   bool     `json:"auto_rotate_portrait"`
	SmartFit     bool     `json:"smart_fit"`
	Style        Style    `json:"style"`
	Running      bool     `json:"running"`
	LastShown    string   `json:"last_shown,omitempty"`
	// Cursor is the index of the last pick in the sorted candidate set;
	// -1 means no pick has been made yet.
	Cursor int `json:"cursor"`

	// ChangeOnStart forces a fresh pick when a running slideshow is
	// resumed at launch instead of re-applying the cached artifact.
	ChangeOnStart  bool `json:"change_on_start"`
	RunOnStartup   bool `json:"run_on_startup"`
	StartMinimized bool `json:"start_minimized"`
}

// DefaultSettings returns the state used on first run and as the fallback
// for a missing or corrupt settings file.
func DefaultSettings() Settings {
	return Settings{
		Sources:      []Source{},
		Policy:       PolicyRandom,
		IntervalSecs: DefaultIntervalSecs,
		AutoRotate:   DefaultAutoRotate,
		Style:        StyleFill,
		Cursor:       -1,
	}
}

// Interval returns the rotation interval as a duration, clamped to the
// supported minimum.
func (s *Settings) Interval() time.Duration {
	d := time.Duration(s.IntervalSecs) * time.Second
	if d < MinInterval {
		return MinInterval
	}
	return d
}

// sanitize repairs out-of-range values after a load so the rest of the
// engine never sees an invalid state.
func (s *Settings) sanitize() {
	if !s.Policy.Valid() {
		s.Policy = PolicyRandom
	}
	if !s.Style.Valid() {
		s.Style = StyleFill
	}
	if s.IntervalSecs < 1 {
		s.IntervalSecs = DefaultIntervalSecs
	}
	if s.Cursor < -1 {
		s.Cursor = -1
	}
	if s.Sources == nil {
		s.Sources = []Source{}
	}
}

// Store persists Settings as a JSON document at a fixed path. Loads never
// fail: corrupt or unreadable data falls back to defaults. Saves are
// atomic: a crash mid-save cannot leave a half-written file. The Store
// remembers the on-disk state it last read or wrote, so a long-running
// owner can notice writes made by another process (Modified).
type Store struct {
	path     string
	lastSync time.Time
}

// NewStore creates a Store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted settings, returning defaults when the file is
// absent, unreadable, or corrupt. Unknown fields are ignored and missing
// fields keep their defaults.
func (st *Store) Load() Settings {
	settings := DefaultSettings()

	data, err := os.ReadFile(st.path)
	st.markSynced()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Settings: unreadable %s, using defaults: %v", st.path, err)
		}
		return settings
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Settings: corrupt %s, using defaults: %v", st.path, err)
		return DefaultSettings()
	}

	settings.sanitize()
	return settings
}

// Save writes the settings atomically: the document is written to a unique
// temp file in the same directory and renamed into place.
func (st *Store) Save(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0700); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	tempPath := filepath.Join(filepath.Dir(st.path), fmt.Sprintf(".%s.%s", filepath.Base(st.path), uuid.NewString()))
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tempPath, st.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replacing settings: %w", err)
	}
	st.markSynced()
	return nil
}

// Modified reports whether the settings file changed on disk since this
// Store last read or wrote it, i.e. whether another process saved
// settings in the meantime.
func (st *Store) Modified() bool {
	info, err := os.Stat(st.path)
	if err != nil {
		return !st.lastSync.IsZero()
	}
	return !info.ModTime().Equal(st.lastSync)
}

// markSynced records the on-disk state this Store has just seen, so
// Modified only reports writes made elsewhere.
func (st *Store) markSynced() {
	if info, err := os.Stat(st.path); err == nil {
		st.lastSync = info.ModTime()
	} else {
		st.lastSync = time.Time{}
	}
}

// Clear resets the persisted state to defaults.
func (st *Store) Clear() error {
	return st.Save(DefaultSettings())
}
