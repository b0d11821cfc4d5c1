package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// localStore implements Store on a directory of the local file system.
type localStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates a store that writes into dir, creating it on first use.
func NewLocalStore(dir string, logger zerolog.Logger) Store {
	return &localStore{
		dir:    dir,
		logger: logger.With().Str("component", "local-image-store").Logger(),
	}
}

// Put writes body to dir/name. An existing file with the same name is overwritten.
func (s *localStore) Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create upload directory")
		return "", fmt.Errorf("failed to create upload directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name)

	file, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create image file")
		return "", fmt.Errorf("failed to create image file %s: %w", path, err)
	}

	written, err := io.Copy(file, body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write image file")
		return "", fmt.Errorf("failed to write image file %s: %w", path, err)
	}

	s.logger.Info().
		Str("path", path).
		Str("content_type", contentType).
		Int64("bytes", written).
		Msg("image stored")

	return name, nil
}
