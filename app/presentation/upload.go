package presentation

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

func PresentationUpload(c *gin.Context, d *internal.Deps) {
	var data validators.PresentationInput
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
		respond.Error(c, fmt.Errorf("%w: presentation file is required", errs.ErrValidationRejected))
		return
	}

	slides, err := validators.PresentationValidator(&data)
	if err != nil {
		respond.Error(c, err)
		return
	}

	p := &model.Presentation{
		Title:      data.Title,
		Slides:     slides,
		ModuleID:   data.ModuleID,
		ModuleName: data.ModuleName,
	}

	if err := d.Presentations.Create(c.Request.Context(), *file, p); err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}
