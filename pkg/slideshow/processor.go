package slideshow

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/muesli/smartcrop"

	"github.com/dixieflatline76/Easel/util/log"

	// Register the webp decoder; jpeg/png/gif/tiff/bmp come with imaging.
	_ "golang.org/x/image/webp"
)

// Processor converts a source image into the single BMP cache artifact the
// OS wallpaper facility consumes. Each successful conversion atomically
// replaces the artifact; a failed conversion leaves the previous artifact
// untouched.
type Processor struct {
	os        OS
	cachePath string
	resampler imaging.ResampleFilter
}

// NewProcessor creates a Processor writing to the given cache artifact path.
func NewProcessor(osImpl OS, cachePath string) *Processor {
	return &Processor{
		os:        osImpl,
		cachePath: cachePath,
		resampler: imaging.Lanczos,
	}
}

// CachePath returns the path of the cache artifact.
func (p *Processor) CachePath() string {
	return p.cachePath
}

// ArtifactExists reports whether a previously converted artifact is on disk.
func (p *Processor) ArtifactExists() bool {
	_, err := os.Stat(p.cachePath)
	return err == nil
}

// Convert decodes the source image, corrects EXIF orientation, optionally
// rotates portrait images to landscape and crops to the screen, encodes the
// result as BMP, and atomically replaces the cache artifact. It returns the
// artifact path. Portrait rotation is always 90 degrees counter-clockwise
// so the same input produces the same output across runs.
func (p *Processor) Convert(srcPath string, autoRotate, smartFit bool) (string, error) {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", &ConversionError{Path: srcPath, Err: fmt.Errorf("decoding: %w", err)}
	}

	if autoRotate && img.Bounds().Dy() > img.Bounds().Dx() {
		img = imaging.Rotate90(img)
	}

	if smartFit {
		// Smart fit is best effort: an undersized image or a failed crop
		// falls back to the plain conversion.
		if fitted, err := p.fitImage(img); err != nil {
			log.Debugf("Processor: smart fit skipped for %s: %v", srcPath, err)
		} else {
			img = fitted
		}
	}

	if err := os.MkdirAll(filepath.Dir(p.cachePath), 0755); err != nil {
		return "", &ConversionError{Path: srcPath, Err: fmt.Errorf("creating cache directory: %w", err)}
	}

	// Write to a unique temp file next to the artifact and rename into
	// place so a crash or a full disk never corrupts the previous artifact.
	tempPath := filepath.Join(filepath.Dir(p.cachePath), fmt.Sprintf(".%s.%s.bmp", filepath.Base(p.cachePath), uuid.NewString()))
	if err := imaging.Save(img, tempPath); err != nil {
		_ = os.Remove(tempPath)
		return "", &ConversionError{Path: srcPath, Err: fmt.Errorf("encoding artifact: %w", err)}
	}
	if err := os.Rename(tempPath, p.cachePath); err != nil {
		_ = os.Remove(tempPath)
		return "", &ConversionError{Path: srcPath, Err: fmt.Errorf("replacing artifact: %w", err)}
	}

	return p.cachePath, nil
}

// fitImage crops the image to the primary screen's dimensions using content
// aware cropping, then resizes it to fit exactly.
func (p *Processor) fitImage(img image.Image) (image.Image, error) {
	systemWidth, systemHeight, err := p.os.getDesktopDimension()
	if err != nil {
		return nil, fmt.Errorf("getting desktop dimensions: %w", err)
	}

	imageWidth := img.Bounds().Dx()
	imageHeight := img.Bounds().Dy()
	if imageWidth < systemWidth || imageHeight < systemHeight {
		return nil, fmt.Errorf("image %dx%d smaller than screen %dx%d", imageWidth, imageHeight, systemWidth, systemHeight)
	}
	if imageWidth == systemWidth && imageHeight == systemHeight {
		return img, nil
	}

	r := &resizer{resampler: p.resampler}
	analyzer := smartcrop.NewAnalyzer(r)
	topCrop, err := analyzer.FindBestCrop(img, systemWidth, systemHeight)
	if err != nil {
		return nil, fmt.Errorf("finding best crop: %w", err)
	}

	cropped := imaging.Crop(img, topCrop)
	return imaging.Resize(cropped, systemWidth, systemHeight, p.resampler), nil
}

// resizer implements the smartcrop.Resizer interface on top of imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

// Resize resizes the image to the given bounds.
func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}
