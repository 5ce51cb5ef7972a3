package community

import (
	"context"
	"time"

	"github.com/blackout-app/backend/internal/domain"
)

type Service struct {
	repo    CommunityRepo
	members MembershipRepo
	photos  PhotoBackfiller
	pub     EventPublisher
	cache   Cache
	clock   Clock

	ttlDetails time.Duration
}

func New(
	repo CommunityRepo,
	members MembershipRepo,
	photos PhotoBackfiller,
	clock Clock,
	pub EventPublisher,
	cache Cache,
	ttlDetails time.Duration,
) *Service {
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}
	return &Service{
		repo:       repo,
		members:    members,
		photos:     photos,
		pub:        pub,
		cache:      cache,
		clock:      clock,
		ttlDetails: ttlDetails,
	}
}

// requireMember loads the actor's membership or refuses.
func (s *Service) requireMember(ctx context.Context, communityID, actorID string) (*domain.Membership, error) {
	m, err := s.members.Get(ctx, communityID, actorID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrForbidden("not a member of this community")
	}
	return m, nil
}

// requireAdmin refuses unless the actor holds the admin role.
func (s *Service) requireAdmin(ctx context.Context, communityID, actorID string) (*domain.Membership, error) {
	m, err := s.requireMember(ctx, communityID, actorID)
	if err != nil {
		return nil, err
	}
	if !m.IsAdmin() {
		return nil, domain.ErrForbidden("only an admin can do this")
	}
	return m, nil
}
