package storage

import (
	"comply/media-api/internal/errs"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Local stores files under a directory on disk
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory, %w", err)
	}

	return &Local{root: root}, nil
}

// Put writes into a hidden temp file next to the target and links it to the
// final name, so readers never see a partial file and a taken name fails
// instead of being overwritten
func (l *Local) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	final := filepath.Join(l.root, filepath.FromSlash(key))
	dir := filepath.Dir(final)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory, %v", errs.ErrStorageFailure, err)
	}

	tmp, err := os.CreateTemp(dir, ".partial-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temporary file, %v", errs.ErrStorageFailure, err)
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, WithContext(ctx, r))
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		return fmt.Errorf("%w: failed to write file, %v", errs.ErrStorageFailure, err)
	}

	if err := os.Link(tmp.Name(), final); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: key %s already exists", errs.ErrStorageFailure, key)
		}

		// Some filesystems don't do hard links
		zap.L().Debug("Hard link failed, falling back to rename", zap.Error(err))
		if _, serr := os.Stat(final); serr == nil {
			return fmt.Errorf("%w: key %s already exists", errs.ErrStorageFailure, key)
		}

		if err := os.Rename(tmp.Name(), final); err != nil {
			return fmt.Errorf("%w: failed to publish file, %v", errs.ErrStorageFailure, err)
		}
	}

	return nil
}

func (l *Local) Open(_ context.Context, key string) (*Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.ErrNotFound
		}

		return nil, fmt.Errorf("%w: failed to open file, %v", errs.ErrStorageFailure, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: failed to stat file, %v", errs.ErrStorageFailure, err)
	}

	return &Object{
		Body:        f,
		Size:        stat.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(key)),
		ModTime:     stat.ModTime(),
	}, nil
}
