package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agile-academy/academy_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaProvider
}

func NewMediaHandler(mediaSvc MediaProvider) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// UploadTemplateFile attaches a downloadable file to a template resource
// @Summary Upload a template file
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Resource ID"
// @Param file formData file true "Template file"
// @Success 201 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/resources/{id}/file [post]
func (h *MediaHandler) UploadTemplateFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return shared.ResponseBadRequest(c, "Missing file")
	}

	objectKey, err := h.mediaSvc.UploadTemplateFile(c.Params("id"), fileHeader)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, fiber.Map{"object_key": objectKey})
}

// DownloadResource returns a short-lived download URL for the resource
// @Summary Get a resource download URL
// @Tags media
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/resources/{id}/download [get]
func (h *MediaHandler) DownloadResource(c *fiber.Ctx) error {
	url, err := h.mediaSvc.DownloadURL(c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, fiber.Map{"url": url})
}
