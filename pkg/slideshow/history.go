package slideshow

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// HistoryEntry records one successfully applied wallpaper.
type HistoryEntry struct {
	Path    string    `json:"path"`
	ShownAt time.Time `json:"shown_at"`
}

// History is a capped, append-only log of shown wallpapers kept in a
// BoltDB file under the config directory. The log is advisory: a failed
// write never affects the slideshow itself.
type History struct {
	db *bolt.DB
}

// OpenHistory creates or opens the history database at the given path.
func OpenHistory(path string) (*History, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(historyBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history bucket: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record appends an entry and prunes the oldest entries beyond HistoryCap.
func (h *History) Record(entry HistoryEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding history entry: %w", err)
	}

	return h.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		// RFC3339Nano keys sort chronologically, so a cursor walk from the
		// front visits oldest entries first.
		key := []byte(entry.ShownAt.UTC().Format(time.RFC3339Nano))
		if err := bucket.Put(key, value); err != nil {
			return err
		}

		// Stats are unreliable mid-transaction, so count directly; the
		// bucket never holds more than HistoryCap+1 entries.
		count := 0
		c := bucket.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			count++
		}

		// Collect the stale keys before deleting: mutating the bucket
		// under an iterating cursor skips entries.
		var stale [][]byte
		for k, _ := c.First(); k != nil && count-len(stale) > HistoryCap; k, _ = c.Next() {
			stale = append(stale, k)
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(n int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := h.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(historyBucket)).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			var entry HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				// Skip undecodable entries rather than failing the listing.
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
