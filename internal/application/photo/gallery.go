package photo

import (
	"context"

	"github.com/blackout-app/backend/internal/domain"
)

// GalleryItem is a revealed photo with its storage ref already resolved.
type GalleryItem struct {
	Photo *domain.Photo
	URL   string
}

// Gallery gates a community's photos behind the reveal policy. Denied
// requests carry the countdown so the caller can redirect and surface it;
// no partial gallery is ever returned.
func (s *Service) Gallery(ctx context.Context, communityID, actorID string) ([]GalleryItem, error) {
	m, err := s.members.Get(ctx, communityID, actorID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrForbidden("not a member of this community")
	}

	c, err := s.communities.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	decision := domain.GalleryAccess(c, now, s.reveal)
	if !decision.Allowed {
		if decision.Countdown == "" {
			return nil, domain.ErrForbidden("this community has no end date, photos stay hidden")
		}
		return nil, domain.ErrForbiddenMeta("photos are not revealed yet", map[string]string{
			"remaining": decision.Countdown,
		})
	}

	photos, err := s.photos.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}

	items := make([]GalleryItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, GalleryItem{Photo: p, URL: s.resolveRef(p.ObjectKey)})
	}
	return items, nil
}
