package community

import (
	"context"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/contracts/event"
	"github.com/blackout-app/backend/internal/domain"
)

// JoinResult reports how a join ended. AlreadyMember is a success, not an
// error: the invite-link flow may fire twice (login redirect replays it).
type JoinResult struct {
	Membership    domain.Membership
	AlreadyMember bool
}

func (s *Service) Join(ctx context.Context, communityID, actorID string) (JoinResult, error) {
	// the link may reference a community deleted since it was shared
	c, err := s.repo.GetByID(ctx, communityID)
	if err != nil {
		return JoinResult{}, err
	}

	m := domain.Membership{
		CommunityID: communityID,
		UserID:      actorID,
		Role:        domain.RoleMember,
		CreatedAt:   s.clock.Now().UTC(),
		Community:   c,
	}

	created, err := s.members.Add(ctx, m)
	if err != nil {
		return JoinResult{}, err
	}
	if !created {
		return JoinResult{Membership: m, AlreadyMember: true}, nil
	}

	if s.pub != nil {
		env := event.Envelope[MemberJoinedPayload]{
			Version:    event.Version,
			Producer:   event.Producer,
			MessageID:  uuid.NewString(),
			OccurredAt: m.CreatedAt,
			Payload: MemberJoinedPayload{
				CommunityID: communityID,
				UserID:      actorID,
				Role:        string(m.Role),
			},
		}
		if err := s.pub.PublishEvent(ctx, "member.joined", env); err != nil {
			zlog.Error().Err(err).Str("community_id", communityID).Msg("publish member.joined failed")
		}
	}

	return JoinResult{Membership: m}, nil
}
