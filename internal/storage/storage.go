// Package storage keeps admitted files on a durable backend. Keys look like
// "videos/<name>" and are exposed to clients as locators ("/uploads/videos/<name>").
package storage

import (
	"comply/media-api/aws"
	"comply/media-api/config"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

const LocatorPrefix = "/uploads/"

var ErrInvalidKey = errors.New("invalid storage key")

// Object is an opened stored file. Body is an io.ReadSeeker when the backend
// supports it, which lets the HTTP layer answer range requests.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

type Storage interface {
	// Put publishes r under key. The key becomes visible only once the whole
	// content is written and an existing key is never overwritten.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (*Object, error)
}

func Locator(key string) string {
	return LocatorPrefix + key
}

// KeyFromLocator reverses Locator and rejects anything that could escape the
// storage root
func KeyFromLocator(locator string) (string, error) {
	key, ok := strings.CutPrefix(locator, LocatorPrefix)
	if !ok {
		return "", ErrInvalidKey
	}

	if err := validateKey(key); err != nil {
		return "", err
	}

	return key, nil
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || path.Clean(key) != key || strings.HasPrefix(key, "..") {
		return ErrInvalidKey
	}

	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}

// WithContext stops r as soon as ctx is done
func WithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

// New builds the backend selected by storage.type
func New(ctx context.Context, c config.StorageConfig) (Storage, error) {
	switch c.Type {
	case "s3":
		client, err := aws.NewS3(ctx, c.S3)
		if err != nil {
			return nil, err
		}

		return NewS3(client.C, *client.Bucket), nil
	case "local":
		return NewLocal(c.Local.Path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", c.Type)
	}
}
