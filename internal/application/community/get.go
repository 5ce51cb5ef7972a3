package community

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/domain"
)

// Get returns the community to one of its members. Details are cached;
// the window phase is always derived later from a fresh clock reading,
// never stored.
func (s *Service) Get(ctx context.Context, communityID, actorID string) (*domain.Community, error) {
	if _, err := s.requireMember(ctx, communityID, actorID); err != nil {
		return nil, err
	}

	key := cacheKeyCommunity(communityID)
	if s.cache != nil {
		var cached domain.Community
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			return &cached, nil
		}
	}

	c, err := s.repo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, c, s.ttlDetails); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return c, nil
}

// ListMine returns the actor's membership snapshot with communities
// populated. Deliberately uncached: capture attribution reads this and a
// stale window risks photos landing in the wrong event.
func (s *Service) ListMine(ctx context.Context, actorID string) ([]domain.Membership, error) {
	if actorID == "" {
		return nil, domain.ErrForbidden("not allowed")
	}
	return s.members.ListByUser(ctx, actorID)
}
