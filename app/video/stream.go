package video

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VideoStream serves the stored file. Range requests work for seekable
// backends.
func VideoStream(c *gin.Context, d *internal.Deps) {
	v, obj, err := d.Videos.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := v.MimeType
	if contentType == "" {
		contentType = obj.ContentType
	}

	if rs, ok := obj.Body.(io.ReadSeeker); ok {
		c.Header("Content-Type", contentType)
		http.ServeContent(c.Writer, c.Request, v.FileName, obj.ModTime, rs)
		return
	}

	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, nil)
}
