package presentation

import (
	"comply/media-api/app/respond"
	"comply/media-api/internal"
	"comply/media-api/internal/service"
	"comply/media-api/pkg/validators"
	"net/http"

	"github.com/gin-gonic/gin"
)

func PresentationEdit(c *gin.Context, d *internal.Deps) {
	var data validators.PresentationUpdateInput
	if err := respond.Bind(c, &data); err != nil {
		respond.Error(c, err)
		return
	}

	slides, err := validators.PresentationUpdateValidator(&data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	file, closeFile, err := respond.FormFile(c, "file")
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer closeFile()

	p, err := d.Presentations.Update(c.Request.Context(), c.Param("id"), service.PresentationChanges{
		Title:      data.Title,
		Slides:     slides,
		ModuleID:   data.ModuleID,
		ModuleName: data.ModuleName,
	}, file)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
