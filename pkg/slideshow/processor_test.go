package slideshow

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestImage writes a width x height PNG with a gradient, so smart crop
// has some structure to work with.
func writeTestImage(t *testing.T, path string, width, height int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255})
		}
	}
	require.NoError(t, imaging.Save(img, path))
	return path
}

// artifactSize decodes the cache artifact and returns its dimensions.
func artifactSize(t *testing.T, path string) (int, int) {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestConvertLandscapePassThrough(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, filepath.Join(dir, "src.png"), 320, 200)
	cachePath := filepath.Join(dir, "cache", "wallpaper.bmp")

	mockOS := new(MockOS)
	p := NewProcessor(mockOS, cachePath)

	artifact, err := p.Convert(src, true, false)
	require.NoError(t, err)
	assert.Equal(t, cachePath, artifact)
	assert.True(t, p.ArtifactExists())

	w, h := artifactSize(t, artifact)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
	mockOS.AssertNotCalled(t, "getDesktopDimension")
}

func TestConvertRotatesPortrait(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, filepath.Join(dir, "portrait.png"), 200, 320)
	cachePath := filepath.Join(dir, "wallpaper.bmp")

	p := NewProcessor(new(MockOS), cachePath)

	_, err := p.Convert(src, true, false)
	require.NoError(t, err)

	w, h := artifactSize(t, cachePath)
	assert.Equal(t, 320, w, "portrait input must come out landscape")
	assert.Equal(t, 200, h)
}

func TestConvertKeepsPortraitWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, filepath.Join(dir, "portrait.png"), 200, 320)
	cachePath := filepath.Join(dir, "wallpaper.bmp")

	p := NewProcessor(new(MockOS), cachePath)

	_, err := p.Convert(src, false, false)
	require.NoError(t, err)

	w, h := artifactSize(t, cachePath)
	assert.Equal(t, 200, w)
	assert.Equal(t, 320, h)
}

func TestConvertSmartFitCropsToScreen(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, filepath.Join(dir, "big.png"), 640, 480)
	cachePath := filepath.Join(dir, "wallpaper.bmp")

	mockOS := new(MockOS)
	mockOS.On("getDesktopDimension").Return(320, 180, nil)
	p := NewProcessor(mockOS, cachePath)

	_, err := p.Convert(src, true, true)
	require.NoError(t, err)

	w, h := artifactSize(t, cachePath)
	assert.Equal(t, 320, w)
	assert.Equal(t, 180, h)
	mockOS.AssertExpectations(t)
}

func TestConvertSmartFitFallsBackOnSmallImage(t *testing.T) {
	dir := t.TempDir()
	src := writeTestImage(t, filepath.Join(dir, "small.png"), 100, 80)
	cachePath := filepath.Join(dir, "wallpaper.bmp")

	mockOS := new(MockOS)
	mockOS.On("getDesktopDimension").Return(1920, 1080, nil)
	p := NewProcessor(mockOS, cachePath)

	// An image smaller than the screen skips the crop but still converts.
	_, err := p.Convert(src, true, true)
	require.NoError(t, err)

	w, h := artifactSize(t, cachePath)
	assert.Equal(t, 100, w)
	assert.Equal(t, 80, h)
}

func TestConvertRejectsCorruptSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corrupt.jpg")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0644))
	cachePath := filepath.Join(dir, "wallpaper.bmp")

	p := NewProcessor(new(MockOS), cachePath)

	_, err := p.Convert(src, true, false)
	require.Error(t, err)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, src, convErr.Path)
	assert.False(t, p.ArtifactExists())
}

func TestConvertFailurePreservesArtifact(t *testing.T) {
	dir := t.TempDir()
	good := writeTestImage(t, filepath.Join(dir, "good.png"), 320, 200)
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0644))
	cachePath := filepath.Join(dir, "wallpaper.bmp")

	p := NewProcessor(new(MockOS), cachePath)

	_, err := p.Convert(good, true, false)
	require.NoError(t, err)
	before, err := os.ReadFile(cachePath)
	require.NoError(t, err)

	_, err = p.Convert(bad, true, false)
	require.Error(t, err)

	// The previous artifact must survive the failed conversion byte for byte.
	after, err := os.ReadFile(cachePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// No stray temp files either.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".wallpaper.bmp.", "leftover temp file %s", e.Name())
	}
}
