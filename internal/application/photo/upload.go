package photo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/blackout-app/backend/internal/domain"
)

// Upload is a presigned PUT the client writes the image bytes to before
// calling Capture with the returned object key.
type Upload struct {
	ObjectKey string
	PutURL    string
}

var extByContentType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
}

func (s *Service) NewUpload(ctx context.Context, actorID, contentType string) (*Upload, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, domain.ErrForbidden("not allowed")
	}
	if s.storage == nil {
		return nil, domain.ErrUnavailable("uploads are not configured")
	}
	ext, ok := extByContentType[contentType]
	if !ok {
		return nil, domain.ErrValidationMeta("unsupported content type", map[string]string{
			"content_type": "must be one of: image/jpeg, image/png, image/webp, image/heic",
		})
	}

	key := "photos/" + uuid.NewString() + "." + ext
	url, err := s.storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, domain.ErrUnavailable("storage is unavailable, try again")
	}
	return &Upload{ObjectKey: key, PutURL: url}, nil
}
