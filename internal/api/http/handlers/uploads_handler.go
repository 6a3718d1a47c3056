package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// UploadsHandler accepts screenshot uploads.
type UploadsHandler struct {
	service *service.UploadService
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(uploadService *service.UploadService) *UploadsHandler {
	return &UploadsHandler{service: uploadService}
}

// Upload handles POST /upload (bearer, multipart "file" field).
func (h *UploadsHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file field required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	record, err := h.service.Upload(c.Context(), principal.UserID, service.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.UploadResponse{URL: record.URL}})
}

// List handles GET /uploads: the caller's own upload history.
func (h *UploadsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	records, err := h.service.ListForOwner(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	items := make([]dto.UploadRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewUploadRecordResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
