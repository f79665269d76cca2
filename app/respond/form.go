package respond

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/upload"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Bind decodes the request body into obj
func Bind(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		return formError(err)
	}

	return nil
}

// FormFile opens the multipart file under field. It returns a nil upload when
// the request carries no file. The returned func closes the file.
func FormFile(c *gin.Context, field string) (*upload.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}

		return nil, func() {}, formError(err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open multipart file, %w", err)
	}

	return &upload.Upload{
		Reader:   f,
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     fh.Size,
	}, func() { f.Close() }, nil
}

func formError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: request body is limited to %d bytes", errs.ErrSizeExceeded, mbe.Limit)
	}

	return fmt.Errorf("%w: invalid request body", errs.ErrValidationRejected)
}
