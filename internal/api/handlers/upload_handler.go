package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/internal/api/presenters"
	"SpendLens-Backend/internal/utils/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	UploadHandler interface {
		RequestUploadURL(c *fiber.Ctx) error
	}

	uploadHandler struct {
		s3        storage.AwsS3
		validator *validator.Validate
	}
)

func NewUploadHandler(s3 storage.AwsS3, validator *validator.Validate) UploadHandler {
	return &uploadHandler{
		s3:        s3,
		validator: validator,
	}
}

// RequestUploadURL negotiates a client-side receipt upload: the response
// carries a short-lived signed PUT URL and the durable object URL the client
// submits back when creating the receipt.
func (h *uploadHandler) RequestUploadURL(c *fiber.Ctx) error {
	req := new(domain.RequestUploadURLRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestUpload, err)
	}

	fileName := fmt.Sprintf("receipt-%s%s", uuid.New().String(), filepath.Ext(req.Name))

	uploadURL, objectURL, err := h.s3.PresignUploadURL(fileName, "receipts", req.ContentType, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFileType) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestUpload, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRequestUpload, err)
	}

	return presenters.SuccessResponse(c, domain.RequestUploadURLResponse{
		UploadURL: uploadURL,
		ObjectURL: objectURL,
	}, fiber.StatusOK)
}
