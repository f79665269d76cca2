package video

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"comply/media-api/internal/model"
	"comply/media-api/internal/service"
	"comply/media-api/pkg/validators"
	"net/http"

	"github.com/gin-gonic/gin"
)

// VideoEdit updates metadata and optionally replaces the file
func VideoEdit(c *gin.Context, d *internal.Deps) {
	var data validators.VideoUpdateInput
	if err := respond.Bind(c, &data); err != nil {
		respond.Error(c, err)
		return
	}

	if err := validators.VideoUpdateValidator(&data); err != nil {
		respond.Error(c, err)
		return
	}

	file, closeFile, err := respond.FormFile(c, "file")
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer closeFile()

	ch := service.VideoChanges{
		Title:      data.Title,
		Duration:   data.Duration,
		ModuleID:   data.ModuleID,
		ModuleName: data.ModuleName,
	}

	if data.Type != nil {
		t := model.VideoType(*data.Type)
		ch.Type = &t
	}

	v, err := d.Videos.Update(c.Request.Context(), c.Param("id"), ch, file)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, v)
}
