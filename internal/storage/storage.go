package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned by DetectImage when the content is not an accepted image type.
var ErrNotImage = errors.New("file is not an image")

// ErrInvalidName is returned when a stored name is not a plain file name.
var ErrInvalidName = errors.New("invalid file name")

// Store persists uploaded images.
type Store interface {
	// Put stores body under name, replacing any existing object with the same
	// name, and returns the name to record on the owning entity.
	Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error)
}

// imageTypes are the content types accepted as images: jpeg, png, gif, bmp, svg and webp.
var imageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/svg+xml",
	"image/webp",
}

// sniffLen matches the default read limit of mimetype.
const sniffLen = 3072

// DetectImage sniffs the leading bytes of r and reports the detected content type.
// The returned reader replays the sniffed bytes followed by the rest of r.
func DetectImage(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	for _, t := range imageTypes {
		if mt.Is(t) {
			return t, io.MultiReader(bytes.NewReader(head), r), nil
		}
	}

	return mt.String(), nil, ErrNotImage
}

// RemoveIfFile deletes path only when it exists and is a regular file.
// Missing paths and directories are left alone and reported as not removed.
func RemoveIfFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return true, nil
}

// checkName rejects anything that is not a bare file name.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
