package community

import (
	"context"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/contracts/event"
	"github.com/blackout-app/backend/internal/domain"
)

// backfillWindow bounds retroactive attachment: photos captured within one
// calendar day either side of the new community's start date.
const backfillWindow = 24 * time.Hour

type CreateCmd struct {
	ActorID   string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
}

// Create makes the community, auto-joins the creator as admin in the same
// transaction, and best-effort backfills the creator's unattached photos
// around the start date.
func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Community, error) {
	now := s.clock.Now()

	c, err := domain.NewCommunity(cmd.ActorID, cmd.Name, cmd.StartDate, cmd.EndDate, now)
	if err != nil {
		return nil, err
	}

	creator := domain.Membership{
		CommunityID: c.ID,
		UserID:      cmd.ActorID,
		Role:        domain.RoleAdmin,
		CreatedAt:   now.UTC(),
	}
	if err := s.repo.Create(ctx, c, creator); err != nil {
		return nil, err
	}

	backfilled := 0
	if c.StartDate != nil && s.photos != nil {
		from := c.StartDate.Add(-backfillWindow)
		to := c.StartDate.Add(backfillWindow)
		n, err := s.photos.AttachUnassigned(ctx, cmd.ActorID, c.ID, from, to)
		if err != nil {
			// best-effort: the community exists either way
			zlog.Warn().Err(err).Str("community_id", c.ID).Msg("photo backfill failed")
		} else {
			backfilled = n
		}
	}

	if s.pub != nil {
		env := event.Envelope[CommunityCreatedPayload]{
			Version:    event.Version,
			Producer:   event.Producer,
			MessageID:  uuid.NewString(),
			OccurredAt: now.UTC(),
			Payload: CommunityCreatedPayload{
				CommunityID: c.ID,
				Name:        c.Name,
				CreatedBy:   c.CreatedBy,
				StartDate:   c.StartDate,
				EndDate:     c.EndDate,
				Backfilled:  backfilled,
			},
		}
		if err := s.pub.PublishEvent(ctx, "community.created", env); err != nil {
			zlog.Error().Err(err).Str("community_id", c.ID).Msg("publish community.created failed")
		}
	}

	return c, nil
}
