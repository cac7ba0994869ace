package service

import (
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"

	"github.com/threadlens/threadlens/shared/domain"
	"github.com/threadlens/threadlens/shared/logger"
	"github.com/threadlens/threadlens/shared/middleware/metrics"
)

// OptimizedImageStore persists derived thumbnail records. The implementation
// must be an idempotent find-or-create keyed by (upload, width, height,
// extension).
type OptimizedImageStore interface {
	FindOrCreateOptimizedImage(ctx context.Context, oi domain.OptimizedImage) (domain.OptimizedImage, error)
}

// MediaStore reads original upload files and stores generated thumbnails.
type MediaStore interface {
	Read(relativePath string) (io.ReadCloser, error)
	SaveOptimized(uploadId int64, width, height int, extension string, data io.Reader) (string, error)
}

// Thumbnailer creates missing derived thumbnails on demand. Concurrent calls
// for the same (upload, dimensions) pair write the same deterministic file
// and collapse onto one database row, so repetition never duplicates assets.
type Thumbnailer struct {
	store OptimizedImageStore
	media MediaStore
}

func NewThumbnailer(store OptimizedImageStore, media MediaStore) *Thumbnailer {
	return &Thumbnailer{store: store, media: media}
}

// CreateFor scales the upload to width x height and records the result.
// A nil return without error means creation was not possible (unreadable
// source, undecodable image); the caller falls back to the original URL.
func (t *Thumbnailer) CreateFor(ctx context.Context, upload domain.Upload, width, height int) (*domain.OptimizedImage, error) {
	if width <= 0 || height <= 0 {
		return nil, nil
	}

	ext := "." + strings.TrimPrefix(upload.Extension, ".")
	url, ok := t.generate(upload, width, height, ext)
	if !ok {
		return nil, nil
	}

	oi, err := t.store.FindOrCreateOptimizedImage(ctx, domain.OptimizedImage{
		UploadId:  upload.Id,
		Width:     width,
		Height:    height,
		Extension: ext,
		Url:       url,
	})
	if err != nil {
		return nil, err
	}
	metrics.CountThumbnailCreated()
	return &oi, nil
}

// generate scales the original file. Failures are logged and reported as
// "no thumbnail" rather than errors: a broken source image must not take the
// whole gallery page down.
func (t *Thumbnailer) generate(upload domain.Upload, width, height int, ext string) (string, bool) {
	src, err := t.media.Read(strings.TrimPrefix(upload.Url, "/"))
	if err != nil {
		logger.Log.Warn("thumbnail source unreadable", "upload", upload.Id, "error", err)
		return "", false
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		logger.Log.Warn("thumbnail source undecodable", "upload", upload.Id, "error", err)
		return "", false
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch ext {
	case ".png":
		err = png.Encode(&buf, scaled)
	case ".gif":
		err = gif.Encode(&buf, scaled, nil)
	default:
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		logger.Log.Warn("thumbnail encode failed", "upload", upload.Id, "error", err)
		return "", false
	}

	relativePath, err := t.media.SaveOptimized(upload.Id, width, height, ext, &buf)
	if err != nil {
		logger.Log.Warn("thumbnail write failed", "upload", upload.Id, "error", err)
		return "", false
	}
	return "/" + relativePath, true
}
