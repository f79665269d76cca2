package video

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"comply/media-api/pkg/validators"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func VideoUpload(c *gin.Context, d *internal.Deps) {
	var data validators.VideoInput
	if err := respond.Bind(c, &data); err != nil {
		respond.Error(c, err)
		return
	}

	file, closeFile, err := respond.FormFile(c, "file")
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer closeFile()

	if file == nil {
		respond.Error(c, fmt.Errorf("%w: video file is required", errs.ErrValidationRejected))
		return
	}

	if err := validators.VideoValidator(&data); err != nil {
		respond.Error(c, err)
		return
	}

	v := &model.Video{
		Title:      data.Title,
		Duration:   data.Duration,
		Type:       model.VideoType(data.Type),
		ModuleID:   data.ModuleID,
		ModuleName: data.ModuleName,
	}

	if err := d.Videos.Create(c.Request.Context(), *file, v); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, v)
}
