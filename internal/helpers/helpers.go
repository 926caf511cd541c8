package helpers

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/observability"
)

const (
	HotelFolder = "hotels"
)

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	return hasLower && hasUpper && hasNumber
}

// RespondError maps a service error onto the wire taxonomy. Outside release
// mode the underlying error is included to ease debugging; in release mode
// only the taxonomy message goes over the wire.
func RespondError(c *gin.Context, err error) {
	body := models.ErrorResponse(apperr.Message(err))
	if gin.Mode() != gin.ReleaseMode {
		body.Error = err.Error()
	}
	c.JSON(apperr.Status(err), body)
}

// UploadImages pushes multipart image files to Cloudinary and returns their
// secure URLs in upload order.
func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, files []*multipart.FileHeader, folder string) ([]string, error) {
	urls := make([]string, 0, len(files))

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open image %s: %w", fh.Filename, err)
		}

		result, err := cld.Upload.Upload(ctx, f, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"stayhub"},
		})
		f.Close()
		observability.ObserveExternal("cloudinary", "upload", err)
		if err != nil {
			return nil, apperr.Wrap(apperr.Upstream, fmt.Sprintf("failed to upload image %s", fh.Filename), err)
		}
		urls = append(urls, result.SecureURL)
	}

	return urls, nil
}
