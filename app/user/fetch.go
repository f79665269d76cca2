package user

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserFetch returns the public profile of the logged in user
func UserFetch(c *gin.Context, d *internal.Deps) {
	userID := c.GetString("userID")

	profile, err := d.Auth.Profile(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
