package presentation

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PresentationDownload sends the stored file as an attachment under its
// original name
func PresentationDownload(c *gin.Context, d *internal.Deps) {
	p, obj, err := d.Presentations.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := p.MimeType
	if contentType == "" {
		contentType = obj.ContentType
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": p.FileName})
	if disposition == "" {
		disposition = "attachment"
	}

	if rs, ok := obj.Body.(io.ReadSeeker); ok {
		c.Header("Content-Type", contentType)
		c.Header("Content-Disposition", disposition)
		http.ServeContent(c.Writer, c.Request, p.FileName, obj.ModTime, rs)
		return
	}

	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, map[string]string{
		"Content-Disposition": disposition,
	})
}
