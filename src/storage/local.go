// Package storage keeps uploaded and generated media on the local filesystem
// and fetches remote originals from Google Drive.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	QRCodesDir       = "qr_codes"
	ArtifactsDir     = "artifacts"
	GalleryDir       = "artifacts/gallery"
	AudioGuidesDir   = "audio/guides"
	VideosDir        = "videos"
	CollectionsDir   = "collections"
	ThumbnailsDir    = "videos/thumbnails"
	maxNameAttempts  = 10
	suffixRandomSize = 4
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LocalStorage stores files under a root directory. Paths handed back to
// callers are relative to the root, slash separated, and safe to put in URLs.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// Root returns the directory files are written under.
func (s *LocalStorage) Root() string {
	return s.root
}

// Save writes r under dir/name. When the name is taken a random suffix is
// appended, so an existing file is never overwritten.
func (s *LocalStorage) Save(dir, name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.root, filepath.FromSlash(dir)), 0755); err != nil {
		return "", fmt.Errorf("could not create upload directory: %w", err)
	}

	name = SanitizeName(name)
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		rel := path.Join(dir, candidate)
		f, err := os.OpenFile(s.Path(rel), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			candidate = stem + "_" + randomSuffix() + ext
			continue
		}
		if err != nil {
			return "", fmt.Errorf("could not save file: %w", err)
		}

		_, copyErr := io.Copy(f, r)
		closeErr := f.Close()
		if copyErr != nil || closeErr != nil {
			_ = os.Remove(s.Path(rel))
			return "", fmt.Errorf("could not save file: %w", errors.Join(copyErr, closeErr))
		}
		return rel, nil
	}
	return "", fmt.Errorf("could not find a free name for %s in %s", name, dir)
}

// Remove deletes rel. Removing a missing file is not an error.
func (s *LocalStorage) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	if err := os.Remove(s.Path(rel)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Stat reports on rel.
func (s *LocalStorage) Stat(rel string) (fs.FileInfo, error) {
	return os.Stat(s.Path(rel))
}

// Path maps a relative media path to its location on disk.
func (s *LocalStorage) Path(rel string) string {
	clean := path.Clean("/" + rel)
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}

// SanitizeName flattens directory separators and replaces characters unsafe in file names and URLs.
func SanitizeName(name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	name = unsafeName.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

func randomSuffix() string {
	b := make([]byte, suffixRandomSize)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
