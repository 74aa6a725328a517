package slidegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage persists slide illustrations. Implementations can wrap existing
// storage clients (GCS, S3, etc.).
type Storage interface {
	// SaveFile saves data under path and returns a URL or location for it.
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// StorageResult contains information about a saved illustration.
type StorageResult struct {
	// Index is the slide the illustration belongs to
	Index int

	// URL is where the image can be accessed
	URL string

	// Path is the storage path/key where the image was saved
	Path string

	// Size is the number of bytes saved
	Size int
}

// SaveSlides saves the illustration of every slide to storage as
// {basePath}_{n}.{ext}, n starting at 1. Placeholder images are skipped.
func SaveSlides(ctx context.Context, storage Storage, slides []Slide, basePath string) ([]StorageResult, error) {
	if storage == nil {
		return nil, ErrStorageNotConfigured
	}

	results := make([]StorageResult, 0, len(slides))
	for i, slide := range slides {
		img := slide.Image
		if img == nil || img.Placeholder {
			continue
		}
		if err := ValidateImage(img); err != nil {
			return results, fmt.Errorf("slide %d: %w", i+1, err)
		}

		path := fmt.Sprintf("%s_%d.%s", basePath, i+1, extensionFromMIME(img.MIMEType))
		url, err := storage.SaveFile(ctx, img.Data, path, img.MIMEType)
		if err != nil {
			return results, fmt.Errorf("saving slide %d: %w", i+1, err)
		}

		results = append(results, StorageResult{
			Index: i,
			URL:   url,
			Path:  path,
			Size:  len(img.Data),
		})
	}

	return results, nil
}

// DirStorage stores files below a local directory.
type DirStorage struct {
	Root string
}

var _ Storage = DirStorage{}

// SaveFile writes data to Root/path, creating parent directories, and
// returns a file:// URL.
func (d DirStorage) SaveFile(ctx context.Context, data []byte, path string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("path %q escapes storage root", path)
	}

	full := filepath.Join(d.Root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	abs, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// extensionFromMIME returns a file extension for common image MIME types.
func extensionFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
