// Command previewfit runs the wallpaper conversion steps against a single
// image and writes the result next to it, so crop and resize tuning can be
// eyeballed without changing the real desktop.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	_ "golang.org/x/image/webp"
)

type imagingResizer struct{}

func (imagingResizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Lanczos)
}

func main() {
	var (
		width      = flag.Int("w", 1920, "target screen width")
		height     = flag.Int("h", 1080, "target screen height")
		autoRotate = flag.Bool("rotate", true, "rotate portrait images to landscape")
		smartFit   = flag.Bool("smartfit", true, "content-aware crop to the target aspect")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: previewfit [flags] <image>")
	}
	srcPath := flag.Arg(0)

	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		log.Fatalf("open %s: %v", srcPath, err)
	}
	log.Printf("source %dx%d", img.Bounds().Dx(), img.Bounds().Dy())

	if *autoRotate && img.Bounds().Dy() > img.Bounds().Dx() {
		img = imaging.Rotate90(img)
		log.Printf("rotated to %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	if *smartFit {
		analyzer := smartcrop.NewAnalyzer(imagingResizer{})
		crop, err := analyzer.FindBestCrop(img, *width, *height)
		if err != nil {
			log.Fatalf("find crop: %v", err)
		}
		log.Printf("crop %v", crop)
		img = imaging.Resize(imaging.Crop(img, crop), *width, *height, imaging.Lanczos)
	}

	ext := filepath.Ext(srcPath)
	outPath := strings.TrimSuffix(srcPath, ext) + fmt.Sprintf(".preview_%dx%d.bmp", *width, *height)
	if err := imaging.Save(img, outPath); err != nil {
		log.Fatalf("save %s: %v", outPath, err)
	}
	log.Printf("wrote %s", outPath)
}
