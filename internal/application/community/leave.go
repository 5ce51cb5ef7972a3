package community

import (
	"context"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/contracts/event"
	"github.com/blackout-app/backend/internal/domain"
)

// Leave removes the actor's own membership.
func (s *Service) Leave(ctx context.Context, communityID, actorID string) error {
	removed, err := s.members.Remove(ctx, communityID, actorID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound("not a member of this community")
	}

	if s.pub != nil {
		env := event.Envelope[MemberLeftPayload]{
			Version:    event.Version,
			Producer:   event.Producer,
			MessageID:  uuid.NewString(),
			OccurredAt: s.clock.Now().UTC(),
			Payload: MemberLeftPayload{
				CommunityID: communityID,
				UserID:      actorID,
			},
		}
		if err := s.pub.PublishEvent(ctx, "member.left", env); err != nil {
			zlog.Error().Err(err).Str("community_id", communityID).Msg("publish member.left failed")
		}
	}
	return nil
}
