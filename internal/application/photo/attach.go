package photo

import (
	"context"

	"github.com/blackout-app/backend/internal/domain"
)

// Attach retroactively assigns an unattached photo to a community. Only the
// photo's owner may do it, the owner must belong to the target community,
// and a photo that already has a community is refused, never reassigned.
func (s *Service) Attach(ctx context.Context, photoID, communityID, actorID string) (*domain.Photo, error) {
	p, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if p.UserID != actorID {
		return nil, domain.ErrForbidden("not your photo")
	}
	if p.CommunityID != nil {
		return nil, domain.ErrInvalidState("photo already belongs to a community")
	}

	m, err := s.members.Get(ctx, communityID, actorID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrForbidden("not a member of this community")
	}

	attached, err := s.photos.Attach(ctx, photoID, communityID)
	if err != nil {
		return nil, err
	}
	if !attached {
		// raced with another attach; state did not change under us silently
		return nil, domain.ErrInvalidState("photo already belongs to a community")
	}

	p.CommunityID = &communityID
	return p, nil
}
