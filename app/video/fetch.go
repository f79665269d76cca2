package video

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VideoFetchAll lists videos. moduleId wins over type when both are given.
func VideoFetchAll(c *gin.Context, d *internal.Deps) {
	videos, err := d.Videos.List(c.Request.Context(), c.Query("moduleId"), c.Query("type"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

func VideoFetch(c *gin.Context, d *internal.Deps) {
	v, err := d.Videos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
