package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/httpresp"
	"github.com/BruksfildServices01/med-directory/internal/middleware"
	"github.com/BruksfildServices01/med-directory/internal/storage"
	"github.com/BruksfildServices01/med-directory/internal/usecase/media"
)

const imageField = "image"

type MediaHandler struct {
	images *media.Images
}

func NewMediaHandler(images *media.Images) *MediaHandler {
	return &MediaHandler{images: images}
}

// readImage loads the multipart "image" field, refusing oversized files
// before reading them.
func readImage(c *gin.Context) ([]byte, bool) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		httperr.BadRequest(c, "image_required", "Multipart field \"image\" is required")
		return nil, false
	}
	if fh.Size > storage.MaxImageBytes {
		httperr.BadRequest(c, "image_too_large", "Image must be at most 5 MB")
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "image_read_failed", "Could not read image")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxImageBytes+1))
	if err != nil {
		httperr.BadRequest(c, "image_read_failed", "Could not read image")
		return nil, false
	}
	return data, true
}

func (h *MediaHandler) uploadClinic(slot media.Slot) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := readImage(c)
		if !ok {
			return
		}

		clinic, err := h.images.UploadClinic(c.Request.Context(), middleware.UserID(c), c.Param("id"), slot, data)
		if err != nil {
			httperr.Respond(c, err, unexpected("image_upload_failed"))
			return
		}
		httpresp.OK(c, clinic)
	}
}

func (h *MediaHandler) ClinicLogo() gin.HandlerFunc {
	return h.uploadClinic(media.SlotClinicLogo)
}

func (h *MediaHandler) ClinicAdditional() gin.HandlerFunc {
	return h.uploadClinic(media.SlotClinicAdditional)
}

func (h *MediaHandler) RemoveClinicAdditional(c *gin.Context) {
	clinic, err := h.images.RemoveClinicAdditional(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, unexpected("image_remove_failed"))
		return
	}
	httpresp.OK(c, clinic)
}

func (h *MediaHandler) MedicationImage(c *gin.Context) {
	data, ok := readImage(c)
	if !ok {
		return
	}

	med, err := h.images.UploadMedication(c.Request.Context(), middleware.UserID(c), c.Param("id"), data)
	if err != nil {
		httperr.Respond(c, err, unexpected("image_upload_failed"))
		return
	}
	httpresp.OK(c, med)
}
