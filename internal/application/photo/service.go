package photo

import (
	"github.com/blackout-app/backend/internal/domain"
)

type Service struct {
	photos      PhotoRepo
	members     MembershipReader
	communities CommunityReader
	storage     Storage
	pub         EventPublisher
	clock       Clock

	reveal domain.RevealPolicy
}

func New(
	photos PhotoRepo,
	members MembershipReader,
	communities CommunityReader,
	storage Storage,
	clock Clock,
	pub EventPublisher,
	reveal domain.RevealPolicy,
) *Service {
	if reveal == "" {
		reveal = domain.RevealAfterEndOnly
	}
	return &Service{
		photos:      photos,
		members:     members,
		communities: communities,
		storage:     storage,
		pub:         pub,
		clock:       clock,
		reveal:      reveal,
	}
}
