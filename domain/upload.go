package domain

import (
	"errors"
)

var (
	MessageFailedRequestUpload = "failed to issue upload url"

	ErrUnsupportedFileType = errors.New("unsupported file type")
)

type (
	RequestUploadURLRequest struct {
		Name        string `json:"name" validate:"required"`
		Size        int64  `json:"size" validate:"gte=0"`
		ContentType string `json:"contentType" validate:"required"`
	}

	RequestUploadURLResponse struct {
		UploadURL string `json:"uploadUrl"`
		ObjectURL string `json:"objectUrl"`
	}
)
