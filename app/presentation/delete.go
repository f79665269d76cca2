package presentation

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func PresentationDelete(c *gin.Context, d *internal.Deps) {
	if err := d.Presentations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
