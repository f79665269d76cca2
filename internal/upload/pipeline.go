// Package upload admits client files into storage. A file is checked against
// its category, spooled to disk with a hard size cap and then published under
// a random name.
package upload

import (
	"bytes"
	"comply/media-api/internal/errs"
	"comply/media-api/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Matches the default read limit of mimetype
const sniffLen = 3072

type Upload struct {
	Reader   io.Reader
	Filename string
	MimeType string
	// Size is what the client declared, 0 when unknown
	Size int64
}

// StoredFile is the only source of a locator for artifact metadata
type StoredFile struct {
	Locator          string
	OriginalFilename string
	SizeBytes        int64
	MimeType         string
}

type Pipeline struct {
	storage storage.Storage
	tempDir string
}

// New creates a pipeline publishing to s. Uploads are spooled in tempDir, or
// the system temp directory when it's empty.
func New(s storage.Storage, tempDir string) *Pipeline {
	return &Pipeline{storage: s, tempDir: tempDir}
}

func (p *Pipeline) Admit(ctx context.Context, u Upload, cat Category) (*StoredFile, error) {
	if u.Size > cat.MaxSize {
		return nil, fmt.Errorf("%w: %s is limited to %d bytes", errs.ErrSizeExceeded, cat.Name, cat.MaxSize)
	}

	ext := extension(u.Filename)
	mt := normalizeMIME(u.MimeType)

	r := u.Reader
	if mt == "" {
		head := make([]byte, sniffLen)
		n, err := io.ReadFull(r, head)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, readError(ctx, err)
		}

		head = head[:n]
		mt = normalizeMIME(mimetype.Detect(head).String())
		r = io.MultiReader(bytes.NewReader(head), r)

		zap.L().Debug("Sniffed upload content type", zap.String("mime", mt))
	}

	if !cat.Accepts(ext, mt) {
		return nil, fmt.Errorf("%w: unsupported %s file type", errs.ErrValidationRejected, cat.Name)
	}

	spool, err := os.CreateTemp(p.tempDir, "upload-*")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create spool file, %v", errs.ErrStorageFailure, err)
	}
	defer os.Remove(spool.Name())
	defer spool.Close()

	n, err := io.Copy(spool, storage.WithContext(ctx, io.LimitReader(r, cat.MaxSize+1)))
	if err != nil {
		return nil, readError(ctx, err)
	}

	if n > cat.MaxSize {
		return nil, fmt.Errorf("%w: %s is limited to %d bytes", errs.ErrSizeExceeded, cat.Name, cat.MaxSize)
	}

	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: failed to rewind spool file, %v", errs.ErrStorageFailure, err)
	}

	key := cat.Dir + "/" + uuid.NewString() + ext
	if err := p.storage.Put(ctx, key, spool, n, mt); err != nil {
		return nil, err
	}

	return &StoredFile{
		Locator:          storage.Locator(key),
		OriginalFilename: filepath.Base(u.Filename),
		SizeBytes:        n,
		MimeType:         mt,
	}, nil
}

func readError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: request body is limited to %d bytes", errs.ErrSizeExceeded, mbe.Limit)
	}

	return fmt.Errorf("%w: failed to spool upload, %v", errs.ErrStorageFailure, err)
}

// extension returns the lowercased extension or an empty string if it holds
// anything besides ASCII letters and digits
func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 {
		return ""
	}

	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}

	return ext
}

func normalizeMIME(s string) string {
	if s == "" {
		return ""
	}

	mt, _, err := mime.ParseMediaType(s)
	if err != nil {
		return ""
	}

	return mt
}
