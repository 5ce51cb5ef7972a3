package community

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/domain"
)

type UpdateCmd struct {
	ActorID     string
	CommunityID string

	Name       *string
	StartDate  *time.Time
	EndDate    *time.Time
	ClearStart bool
	ClearEnd   bool
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Community, error) {
	if _, err := s.requireAdmin(ctx, cmd.CommunityID, cmd.ActorID); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, cmd.CommunityID)
	if err != nil {
		return nil, err
	}

	if err := c.ApplyUpdate(cmd.Name, cmd.StartDate, cmd.EndDate, cmd.ClearStart, cmd.ClearEnd, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if s.cache != nil {
		key := cacheKeyCommunity(c.ID)
		if err := s.cache.Delete(ctx, key); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
		}
	}

	return c, nil
}
