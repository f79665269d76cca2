package user

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"comply/media-api/internal/service"
	"comply/media-api/pkg/validators"
	"net/http"

	"github.com/gin-gonic/gin"
)

func UserLogin(c *gin.Context, d *internal.Deps) {
	var data validators.LoginInput
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Error(c, respondInvalidBody())
		return
	}

	if err := validators.LoginValidator(&data); err != nil {
		respond.Error(c, err)
		return
	}

	sess, err := d.Auth.Login(c.Request.Context(), data.Email, data.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	setAuthCookie(c, d, sess)
	c.JSON(http.StatusOK, sess)
}

// setAuthCookie mirrors the bearer token into an http only cookie for browser clients
func setAuthCookie(c *gin.Context, d *internal.Deps, sess *service.Session) {
	maxAge := int(d.Config.JWT.Expiry.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", sess.AccessToken, maxAge, "/", "", d.Config.Host.SSL.Enabled, true)
}
