package palette

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// JPEGQuality is the quality used for .jpg and .jpeg exports.
const JPEGQuality = 95

// Export flattens the visible layers of stack onto opaque white and writes
// the result to path. The format follows the extension: .png (also used
// when there is no extension), .jpg/.jpeg, .gif, .bmp, .tif/.tiff.
//
// An empty path is a no-op. On failure a partially written file is removed.
func Export(path string, stack *LayerStack) error {
	if path == "" {
		return nil
	}
	return SaveImage(path, stack.Composite(White).ToImage())
}

// SaveImage writes img to path in the format implied by its extension.
func SaveImage(path string, img image.Image) (err error) {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("palette: export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("palette: export: %w", cerr)
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(path))
		}
	}()

	if err := enc(f, img); err != nil {
		return fmt.Errorf("palette: export %s: %w", filepath.Base(path), err)
	}
	return nil
}

type imageEncoder func(w io.Writer, img image.Image) error

func encoderFor(path string) (imageEncoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
		}, nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
