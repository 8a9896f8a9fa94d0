package slideshow

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dixieflatline76/Easel/util/log"
)

// Source is one user-selected input. A Source pointing at a directory is
// scanned for images, optionally recursing into subfolders; a Source
// pointing at a file is included directly when it still exists.
type Source struct {
	Path              string `json:"path"`
	IncludeSubfolders bool   `json:"include_subfolders"`
}

// Catalog resolves the candidate set from the configured sources. It is a
// pure read of the filesystem; unreadable folders or stale entries degrade
// to fewer candidates, never to an error.
type Catalog struct{}

// NewCatalog creates a new Catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Scan returns the sorted, de-duplicated candidate set for the given
// sources. When singleImage is set the candidate set collapses to exactly
// that path (if it still exists) and the sources are bypassed.
func (c *Catalog) Scan(sources []Source, singleImage string) []string {
	if singleImage != "" {
		if info, err := os.Stat(singleImage); err == nil && !info.IsDir() && isSupportedImage(singleImage) {
			return []string{singleImage}
		}
		log.Debugf("Catalog: single image %s is missing or unsupported", singleImage)
		return nil
	}

	// Each source scans into its own slot so the merge stays deterministic
	// regardless of scheduling.
	results := make([][]string, len(sources))
	var g errgroup.Group
	g.SetLimit(scanWorkers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = c.scanSource(src)
			return nil
		})
	}
	_ = g.Wait() // scanSource never returns an error

	var candidates []string
	for _, r := range results {
		candidates = append(candidates, r...)
	}
	slices.Sort(candidates)
	return slices.Compact(candidates)
}

// scanSource enumerates a single source. Errors are logged and swallowed:
// a missing or unreadable source yields zero candidates.
func (c *Catalog) scanSource(src Source) []string {
	info, err := os.Stat(src.Path)
	if err != nil {
		log.Debugf("Catalog: skipping source %s: %v", src.Path, err)
		return nil
	}

	if !info.IsDir() {
		if isSupportedImage(src.Path) {
			return []string{src.Path}
		}
		return nil
	}

	var found []string
	if src.IncludeSubfolders {
		err = filepath.WalkDir(src.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, not fatal.
				log.Debugf("Catalog: skipping %s: %v", path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && isSupportedImage(path) {
				found = append(found, path)
			}
			return nil
		})
	} else {
		var entries []fs.DirEntry
		entries, err = os.ReadDir(src.Path)
		for _, entry := range entries {
			if entry.Type().IsRegular() && isSupportedImage(entry.Name()) {
				found = append(found, filepath.Join(src.Path, entry.Name()))
			}
		}
	}
	if err != nil {
		log.Debugf("Catalog: partial scan of %s: %v", src.Path, err)
	}
	return found
}

// isSupportedImage reports whether the path carries an allowed image
// extension. The match is case-insensitive.
func isSupportedImage(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}
