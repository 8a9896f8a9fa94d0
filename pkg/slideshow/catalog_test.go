package slideshow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates an empty file at the given path.
func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestScanFlatFolder(t *testing.T) {
	dir := t.TempDir()
	b := touch(t, filepath.Join(dir, "b.png"))
	a := touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "notes.txt"))
	nested := touch(t, filepath.Join(dir, "sub", "c.jpg"))

	catalog := NewCatalog()
	got := catalog.Scan([]Source{{Path: dir}}, "")

	// Sorted, non-images excluded, subfolder not entered.
	assert.Equal(t, []string{a, b}, got)
	assert.NotContains(t, got, nested)
}

func TestScanRecursive(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.jpg"))
	c := touch(t, filepath.Join(dir, "sub", "deeper", "c.webp"))
	b := touch(t, filepath.Join(dir, "sub", "b.JPEG")) // extension match is case-insensitive

	catalog := NewCatalog()
	got := catalog.Scan([]Source{{Path: dir, IncludeSubfolders: true}}, "")

	assert.Equal(t, []string{a, b, c}, got)
}

func TestScanMergesAndDeduplicates(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	a := touch(t, filepath.Join(dir1, "a.jpg"))
	b := touch(t, filepath.Join(dir2, "b.jpg"))

	catalog := NewCatalog()
	got := catalog.Scan([]Source{
		{Path: dir1},
		{Path: dir2},
		{Path: dir1}, // duplicate source must not duplicate candidates
	}, "")

	want := []string{a, b}
	if b < a {
		want = []string{b, a}
	}
	assert.Equal(t, want, got)
}

func TestScanFileSource(t *testing.T) {
	dir := t.TempDir()
	img := touch(t, filepath.Join(dir, "solo.png"))
	txt := touch(t, filepath.Join(dir, "solo.txt"))

	catalog := NewCatalog()
	assert.Equal(t, []string{img}, catalog.Scan([]Source{{Path: img}}, ""))
	assert.Empty(t, catalog.Scan([]Source{{Path: txt}}, ""))
}

func TestScanMissingSourceYieldsNothing(t *testing.T) {
	catalog := NewCatalog()
	got := catalog.Scan([]Source{{Path: filepath.Join(t.TempDir(), "gone")}}, "")
	assert.Empty(t, got)
}

func TestScanSingleImageOverride(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jpg"))
	touch(t, filepath.Join(dir, "b.jpg"))
	pinned := touch(t, filepath.Join(dir, "pinned.png"))

	catalog := NewCatalog()

	// The override bypasses the sources entirely.
	got := catalog.Scan([]Source{{Path: dir}}, pinned)
	assert.Equal(t, []string{pinned}, got)

	// A stale override yields an empty set, it does not fall back.
	got = catalog.Scan([]Source{{Path: dir}}, filepath.Join(dir, "gone.png"))
	assert.Empty(t, got)

	// An unsupported override behaves like a stale one.
	txt := touch(t, filepath.Join(dir, "pinned.txt"))
	assert.Empty(t, catalog.Scan(nil, txt))
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, isSupportedImage("/x/a.jpg"))
	assert.True(t, isSupportedImage("/x/a.JPG"))
	assert.True(t, isSupportedImage("a.webp"))
	assert.True(t, isSupportedImage("a.tiff"))
	assert.False(t, isSupportedImage("a.txt"))
	assert.False(t, isSupportedImage("a.jpg.part"))
	assert.False(t, isSupportedImage("noext"))
}
