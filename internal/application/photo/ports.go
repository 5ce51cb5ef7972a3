package photo

import (
	"context"
	"time"

	"github.com/blackout-app/backend/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type PhotoRepo interface {
	Create(ctx context.Context, p *domain.Photo) error
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	// ListByCommunity returns photos newest-first (created_at descending).
	ListByCommunity(ctx context.Context, communityID string) ([]*domain.Photo, error)
	// Attach sets community_id only when it is currently null; attached=false
	// means the photo already belonged somewhere.
	Attach(ctx context.Context, photoID, communityID string) (attached bool, err error)
}

type MembershipReader interface {
	Get(ctx context.Context, communityID, userID string) (*domain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Membership, error)
}

type CommunityReader interface {
	GetByID(ctx context.Context, id string) (*domain.Community, error)
}

// Storage presigns uploads and resolves storage-relative refs to fetchable
// URLs. ResolveURL is a pure, idempotent transform: absolute refs pass
// through unchanged and resolving twice yields the same value.
type Storage interface {
	PresignPut(ctx context.Context, objectKey, contentType string) (string, error)
	ResolveURL(ref string) string
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}
