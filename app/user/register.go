package user

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"comply/media-api/internal/errs"
	"comply/media-api/pkg/validators"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data validators.RegisterInput
	if err := c.ShouldBindJSON(&data); err != nil {
		respond.Error(c, respondInvalidBody())
		return
	}

	if err := validators.RegisterValidator(&data); err != nil {
		zap.L().Debug("Invalid registration", zap.Error(err), zap.String("requestID", requestID))

		respond.Error(c, err)
		return
	}

	sess, err := d.Auth.Register(c.Request.Context(), &data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	setAuthCookie(c, d, sess)
	c.JSON(http.StatusCreated, sess)
}

func respondInvalidBody() error {
	return fmt.Errorf("%w: invalid request body", errs.ErrValidationRejected)
}
