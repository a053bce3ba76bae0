package services

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"

	"github.com/eventtrack/server/internal/apperr"
	"github.com/eventtrack/server/internal/helpers"
)

const maxUploadBatch = 5

type UploadService struct {
	cld *cloudinary.Cloudinary
}

func NewUploadService(cld *cloudinary.Cloudinary) *UploadService {
	return &UploadService{cld: cld}
}

func (us *UploadService) UploadImages(ctx context.Context, sources []string, folder string) ([]string, error) {
	if len(sources) == 0 {
		return nil, apperr.New(apperr.KindValidation, "No images provided")
	}
	if len(sources) > maxUploadBatch {
		return nil, apperr.Newf(apperr.KindValidation, "At most %d images per upload", maxUploadBatch)
	}
	if folder != helpers.EventsFolder && folder != helpers.AvatarFolder {
		return nil, apperr.Newf(apperr.KindValidation, "Unknown upload folder: %s", folder)
	}

	return helpers.UploadImages(ctx, us.cld, sources, folder)
}
