package uploads

import (
	"io"

	upsvc "souqah-backend/internal/application/uploads"
	"souqah-backend/internal/pkg/apperrors"
	"souqah-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *upsvc.Service
}

// UploadAdImage POST /api/v1/uploads/ad-image — multipart "file" field.
func (h *Handlers) UploadAdImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, "A file is required", fiber.StatusBadRequest, nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, "Could not read the uploaded file", fiber.StatusBadRequest, nil)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return response.Error(c, "Could not read the uploaded file", fiber.StatusBadRequest, nil)
	}

	url, err := h.Service.UploadAdImage(c.Context(), fileHeader.Filename, data)
	if err != nil {
		return response.Error(c, apperrors.PublicMessage(err), apperrors.StatusCode(err), nil)
	}
	return response.SuccessCreated(c, "Image uploaded", fiber.Map{"url": url}, nil)
}
