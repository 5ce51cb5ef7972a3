package photo

import (
	"context"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/blackout-app/backend/internal/contracts/event"
	"github.com/blackout-app/backend/internal/domain"
)

type CaptureCmd struct {
	ActorID     string
	ObjectKey   string
	ContentType string
}

// Capture records a photo against whichever of the actor's communities is
// active right now. The clock is read once; the whole decision — membership
// snapshot, resolution, attribution — uses that single instant.
func (s *Service) Capture(ctx context.Context, cmd CaptureCmd) (*domain.Photo, error) {
	now := s.clock.Now()

	snapshot, err := s.members.ListByUser(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	target, err := domain.ResolveActiveCommunity(snapshot, now)
	if err != nil {
		return nil, err
	}

	p, err := domain.NewPhoto(cmd.ActorID, cmd.ObjectKey, cmd.ContentType, &target.ID, now)
	if err != nil {
		return nil, err
	}

	if err := s.photos.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.pub != nil {
		env := event.Envelope[PhotoCapturedPayload]{
			Version:    event.Version,
			Producer:   event.Producer,
			MessageID:  uuid.NewString(),
			OccurredAt: now.UTC(),
			Payload: PhotoCapturedPayload{
				PhotoID:     p.ID,
				CommunityID: target.ID,
				UserID:      p.UserID,
				URL:         s.resolveRef(p.ObjectKey),
				CreatedAt:   p.CreatedAt,
			},
		}
		if err := s.pub.PublishEvent(ctx, "photo.captured", env); err != nil {
			zlog.Error().Err(err).Str("photo_id", p.ID).Msg("publish photo.captured failed")
		}
	}

	return p, nil
}

func (s *Service) resolveRef(ref string) string {
	if s.storage == nil {
		return ref
	}
	return s.storage.ResolveURL(ref)
}

// ResolveURL maps a stored object key to its fetchable URL.
func (s *Service) ResolveURL(ref string) string { return s.resolveRef(ref) }
