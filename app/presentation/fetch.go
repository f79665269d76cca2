package presentation

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func PresentationFetchAll(c *gin.Context, d *internal.Deps) {
	list, err := d.Presentations.List(c.Request.Context(), c.Query("moduleId"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func PresentationFetch(c *gin.Context, d *internal.Deps) {
	p, err := d.Presentations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
