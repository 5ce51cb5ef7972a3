package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPhoto(t *testing.T) {
	now := mustTime(t, "2025-06-01T10:00:00Z")

	t.Run("valid_unattached", func(t *testing.T) {
		p, err := NewPhoto("u1", "photos/abc.jpg", "image/jpeg", nil, now)
		assert.NoError(t, err)
		assert.Nil(t, p.CommunityID)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("valid_attached_at_capture", func(t *testing.T) {
		cid := "c1"
		p, err := NewPhoto("u1", "photos/abc.jpg", "image/png", &cid, now)
		assert.NoError(t, err)
		assert.Equal(t, "c1", *p.CommunityID)
	})

	t.Run("reject_non_image", func(t *testing.T) {
		_, err := NewPhoto("u1", "photos/abc.pdf", "application/pdf", nil, now)
		assert.Error(t, err)
		assert.Equal(t, CodeValidation, err.(*AppError).Code)
	})

	t.Run("reject_missing_object_key", func(t *testing.T) {
		_, err := NewPhoto("u1", "", "image/jpeg", nil, now)
		assert.Error(t, err)
	})
}

func TestPhoto_Attach(t *testing.T) {
	now := mustTime(t, "2025-06-01T10:00:00Z")

	t.Run("attach_once", func(t *testing.T) {
		p, _ := NewPhoto("u1", "photos/a.jpg", "image/jpeg", nil, now)
		assert.NoError(t, p.Attach("c1"))
		assert.Equal(t, "c1", *p.CommunityID)
	})

	t.Run("never_overwrite_existing_attachment", func(t *testing.T) {
		p, _ := NewPhoto("u1", "photos/a.jpg", "image/jpeg", nil, now)
		_ = p.Attach("c1")
		err := p.Attach("c2")
		assert.Error(t, err)
		assert.Equal(t, CodeInvalidState, err.(*AppError).Code)
		assert.Equal(t, "c1", *p.CommunityID)
	})
}
