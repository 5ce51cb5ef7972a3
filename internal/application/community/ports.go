package community

import (
	"context"
	"time"

	"github.com/blackout-app/backend/internal/domain"
)

type Clock interface {
	Now() time.Time
}

type CommunityRepo interface {
	// Create persists the community and the creator's admin membership in
	// one transaction.
	Create(ctx context.Context, c *domain.Community, creator domain.Membership) error
	GetByID(ctx context.Context, id string) (*domain.Community, error)
	Update(ctx context.Context, c *domain.Community) error
	// Delete cascades: memberships first, photos detached, then the row.
	Delete(ctx context.Context, id string) error
}

type MembershipRepo interface {
	// Add is idempotent: a duplicate (community, user) insert is not an
	// error, it reports created=false.
	Add(ctx context.Context, m domain.Membership) (created bool, err error)
	Remove(ctx context.Context, communityID, userID string) (removed bool, err error)
	Get(ctx context.Context, communityID, userID string) (*domain.Membership, error)
	// ListByUser returns the user's memberships with communities populated
	// from a single point-in-time read.
	ListByUser(ctx context.Context, userID string) ([]domain.Membership, error)
}

// PhotoBackfiller retroactively attaches a user's unassigned photos to a
// community. Implementations must never reassign an already attached photo.
type PhotoBackfiller interface {
	AttachUnassigned(ctx context.Context, ownerID, communityID string, from, to time.Time) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}
