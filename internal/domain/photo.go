package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Photo struct {
	ID     string
	UserID string

	// CommunityID is nil for photos captured outside any event window that
	// were kept anyway; it is set once, at capture or through an explicit
	// retroactive attach, and never silently changed.
	CommunityID *string

	// ObjectKey is the storage-relative reference; resolving it to a URL is
	// a pure transform done at read time, never persisted back.
	ObjectKey   string
	ContentType string

	CreatedAt time.Time
}

func NewPhoto(userID, objectKey, contentType string, communityID *string, now time.Time) (*Photo, error) {
	userID = strings.TrimSpace(userID)
	objectKey = strings.TrimSpace(objectKey)
	contentType = strings.TrimSpace(contentType)

	if userID == "" {
		return nil, ErrValidation("user_id is required")
	}
	if objectKey == "" {
		return nil, ErrValidation("object_key is required")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrValidation("content_type must be an image type")
	}

	p := &Photo{
		ID:          uuid.NewString(),
		UserID:      userID,
		ObjectKey:   objectKey,
		ContentType: contentType,
		CreatedAt:   now.UTC(),
	}
	if communityID != nil && *communityID != "" {
		id := *communityID
		p.CommunityID = &id
	}
	return p, nil
}

// Attach sets the community once. Re-attaching is refused, not retried.
func (p *Photo) Attach(communityID string) error {
	if p.CommunityID != nil {
		return ErrInvalidState("photo already belongs to a community")
	}
	if strings.TrimSpace(communityID) == "" {
		return ErrValidation("community_id is required")
	}
	p.CommunityID = &communityID
	return nil
}
