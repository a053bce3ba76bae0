package helpers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	AvatarFolder = "avatars"
	EventsFolder = "events"
)

// StringTrim strips whitespace and surrounding quotes, which show up when
// clients pass ids through templates or JSON strings.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, sources []string, folder string) ([]string, error) {
	var urls []string

	for _, source := range sources {
		if strings.TrimSpace(source) == "" {
			continue
		}
		uploadResult, err := cld.Upload.Upload(ctx, source, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"eventtrack"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %v", source, err)
		}
		urls = append(urls, uploadResult.SecureURL)
	}

	return urls, nil
}
