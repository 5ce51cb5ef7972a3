package community

import (
	"context"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/contracts/event"
)

// Delete removes a community and, inside the same transaction, its
// memberships first so a partial failure never leaves orphaned rows.
// Photos survive with their attachment cleared.
func (s *Service) Delete(ctx context.Context, communityID, actorID string) error {
	if _, err := s.requireAdmin(ctx, communityID, actorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, communityID); err != nil {
		return err
	}

	if s.cache != nil {
		key := cacheKeyCommunity(communityID)
		if err := s.cache.Delete(ctx, key); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
		}
	}

	if s.pub != nil {
		env := event.Envelope[CommunityDeletedPayload]{
			Version:    event.Version,
			Producer:   event.Producer,
			MessageID:  uuid.NewString(),
			OccurredAt: s.clock.Now().UTC(),
			Payload: CommunityDeletedPayload{
				CommunityID: communityID,
				DeletedBy:   actorID,
			},
		}
		if err := s.pub.PublishEvent(ctx, "community.deleted", env); err != nil {
			zlog.Error().Err(err).Str("community_id", communityID).Msg("publish community.deleted failed")
		}
	}

	return nil
}
