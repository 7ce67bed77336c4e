package profile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/validation"
	"golang.org/x/image/draw"
)

const (
	MaxImageBytes = validation.MaxImageBytes
	MaxDimension  = 1024
	JPEGQuality   = 85
)

var (
	ErrImageTooLarge = errors.New("File size should be less than 1 MB only")
	ErrNotAnImage    = errors.New("Please choose a PNG, JPEG or GIF image")
)

var log = logger.New("profile-image")

// PrepareImage checks an upload and, when it is over the size limit, re-encodes
// it as a JPEG that fits in MaxDimension×MaxDimension.
func PrepareImage(filename string, data []byte) (string, []byte, error) {
	if filename == "" || len(data) == 0 {
		return "", nil, validation.Validate(validation.ImageForm{Filename: filename, Size: len(data)})
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", nil, ErrNotAnImage
	}

	if len(data) <= MaxImageBytes {
		return filename, data, nil
	}

	log.Info("Compressing %s (%s, %d bytes)", filename, format, len(data))
	out, err := compress(img, MaxDimension, JPEGQuality)
	if err != nil {
		return "", nil, err
	}
	if len(out) > MaxImageBytes {
		log.Warn("%s still %d bytes after compression", filename, len(out))
		return "", nil, ErrImageTooLarge
	}

	name := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	return name, out, nil
}

// ReadImage loads a picture from disk and prepares it for upload.
func ReadImage(path string) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read image: %w", err)
	}
	return PrepareImage(filepath.Base(path), data)
}

func compress(img image.Image, maxDim, quality int) ([]byte, error) {
	w, h := fit(img.Bounds().Dx(), img.Bounds().Dy(), maxDim)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales w×h down to fit a maxDim square, keeping the aspect ratio.
func fit(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}
