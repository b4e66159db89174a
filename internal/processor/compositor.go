package processor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/dailywall/internal/domain"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/webp" // WebP format support
)

const defaultQuality = 90

// Compositor lays slot images side by side into a single wallpaper
type Compositor struct {
	logger  *zap.Logger
	quality int
}

// NewCompositor creates a compositor writing JPEGs at the given quality
func NewCompositor(logger *zap.Logger, quality int) *Compositor {
	if quality < 1 || quality > 100 {
		quality = defaultQuality
	}
	return &Compositor{
		logger:  logger,
		quality: quality,
	}
}

// ResizeAndCrop scales img to cover w x h without distortion and crops the centre.
// The result is always exactly w x h.
func ResizeAndCrop(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return imaging.New(w, h, color.Black)
	}

	// Crop to the target aspect in source space, then resize down to w x h
	tgtAspect := float64(w) / float64(h)
	cropW, cropH := sw, sh
	if float64(sw)/float64(sh) > tgtAspect {
		// Source is wider, trim the sides
		cropW = clamp(int(math.Round(float64(sh)*tgtAspect)), 1, sw)
	} else {
		cropH = clamp(int(math.Round(float64(sw)/tgtAspect)), 1, sh)
	}

	x := b.Min.X + (sw-cropW)/2
	y := b.Min.Y + (sh-cropH)/2
	cropped := imaging.Crop(img, image.Rect(x, y, x+cropW, y+cropH))
	return imaging.Resize(cropped, w, h, imaging.Lanczos)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// CanvasSize returns the sum of slot widths by the tallest slot height
func CanvasSize(slots []domain.Slot) domain.Resolution {
	var size domain.Resolution
	for _, s := range slots {
		size.Width += s.Target.Width
		size.Height = max(size.Height, s.Target.Height)
	}
	return size
}

// Composite resizes every slot to its target and writes the canvas to outputPath.
// Slots are placed left to right, top aligned; space below shorter slots stays black.
func (c *Compositor) Composite(slots []domain.Slot, outputPath string) error {
	if len(slots) == 0 {
		return fmt.Errorf("%w: nothing to composite", domain.ErrFormat)
	}
	for i, s := range slots {
		if s.Target.Width <= 0 || s.Target.Height <= 0 {
			return fmt.Errorf("%w: slot %d has invalid target %dx%d",
				domain.ErrFormat, i, s.Target.Width, s.Target.Height)
		}
	}

	size := CanvasSize(slots)
	c.logger.Debug("Creating canvas", zap.Int("w", size.Width), zap.Int("h", size.Height))
	canvas := imaging.New(size.Width, size.Height, color.Black)

	x := 0
	for i, s := range slots {
		img, err := imaging.Open(s.ImagePath, imaging.AutoOrientation(true))
		if err != nil {
			return openError(s.ImagePath, err)
		}

		c.logger.Debug("Placing slot",
			zap.Int("slot", i),
			zap.String("image", s.ImagePath),
			zap.Int("src_w", img.Bounds().Dx()),
			zap.Int("src_h", img.Bounds().Dy()),
			zap.Int("w", s.Target.Width),
			zap.Int("h", s.Target.Height),
			zap.Int("x", x))

		tile := ResizeAndCrop(img, s.Target.Width, s.Target.Height)
		canvas = imaging.Paste(canvas, tile, image.Pt(x, 0))
		x += s.Target.Width
	}

	if err := c.save(canvas, outputPath); err != nil {
		return err
	}

	c.logger.Info("Composite written",
		zap.String("path", outputPath),
		zap.Int("slots", len(slots)),
		zap.Int("width", size.Width),
		zap.Int("height", size.Height))
	return nil
}

// save encodes into a temp file next to outputPath and renames it over the target
func (c *Compositor) save(img image.Image, outputPath string) error {
	format, err := imaging.FormatFromFilename(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %v", domain.ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, ".composite-*")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}

	err = imaging.Encode(tmp, img, format, imaging.JPEGQuality(c.quality))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%w: failed to encode composite: %v", domain.ErrIO, err)
	}

	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return fmt.Errorf("%w: failed to write composite: %v", domain.ErrIO, err)
	}
	return nil
}

func openError(path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: opening %s: %v", domain.ErrIO, path, err)
	}
	return fmt.Errorf("%w: decoding %s: %v", domain.ErrFormat, path, err)
}
