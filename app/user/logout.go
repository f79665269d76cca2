package user

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"comply/media-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func UserLogout(c *gin.Context, d *internal.Deps) {
	if err := d.Auth.Logout(c.Request.Context(), middleware.Claims(c)); err != nil {
		respond.Error(c, err)
		return
	}

	c.SetCookie("auth_token", "", -1, "/", "", d.Config.Host.SSL.Enabled, true)
	c.Status(http.StatusNoContent)
}
