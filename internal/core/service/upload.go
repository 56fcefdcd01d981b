package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/AmedoFerguson/backend/internal/core/domain"
	"github.com/AmedoFerguson/backend/internal/core/ports"
)

// resolveImage uploads optional image bytes and returns the hosted URL.
// An empty slice means no image was supplied. The gateway is called at most
// once and never retried; any failure is surfaced as
// *domain.ImageUploadError carrying the gateway's detail.
func resolveImage(ctx context.Context, uploader ports.ImageUploader, logger zerolog.Logger, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	url, err := uploader.Upload(ctx, data, filename)
	if err != nil {
		logger.Warn().Err(err).Msg("image upload failed")
		var uploadErr *domain.ImageUploadError
		if errors.As(err, &uploadErr) {
			return "", uploadErr
		}
		return "", &domain.ImageUploadError{Detail: err.Error()}
	}
	return url, nil
}
