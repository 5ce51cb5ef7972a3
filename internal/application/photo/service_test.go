package photo

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blackout-app/backend/internal/domain"
)

// --- Fakes ---

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type memPhotoRepo struct {
	byID map[string]*domain.Photo
}

func newMemPhotoRepo() *memPhotoRepo { return &memPhotoRepo{byID: map[string]*domain.Photo{}} }

func (m *memPhotoRepo) Create(ctx context.Context, p *domain.Photo) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memPhotoRepo) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("photo not found")
	}
	return p, nil
}

func (m *memPhotoRepo) ListByCommunity(ctx context.Context, communityID string) ([]*domain.Photo, error) {
	var out []*domain.Photo
	for _, p := range m.byID {
		if p.CommunityID != nil && *p.CommunityID == communityID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPhotoRepo) Attach(ctx context.Context, photoID, communityID string) (bool, error) {
	p, ok := m.byID[photoID]
	if !ok {
		return false, domain.ErrNotFound("photo not found")
	}
	if p.CommunityID != nil {
		return false, nil
	}
	p.CommunityID = &communityID
	return true, nil
}

type memMembers struct {
	rows []domain.Membership
}

func (m *memMembers) Get(ctx context.Context, communityID, userID string) (*domain.Membership, error) {
	for i := range m.rows {
		if m.rows[i].CommunityID == communityID && m.rows[i].UserID == userID {
			return &m.rows[i], nil
		}
	}
	return nil, nil
}

func (m *memMembers) ListByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	var out []domain.Membership
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memCommunities struct {
	byID map[string]*domain.Community
}

func (m *memCommunities) GetByID(ctx context.Context, id string) (*domain.Community, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("community not found")
	}
	return c, nil
}

type fakeStorage struct{ base string }

func (f fakeStorage) PresignPut(ctx context.Context, objectKey, contentType string) (string, error) {
	return f.base + "/presigned/" + objectKey, nil
}

func (f fakeStorage) ResolveURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return f.base + "/" + ref
}

type recordingPublisher struct {
	keys []string
}

func (r *recordingPublisher) PublishEvent(ctx context.Context, routingKey string, payload any) error {
	r.keys = append(r.keys, routingKey)
	return nil
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tt.UTC()
}

func tp(t time.Time) *time.Time { return &t }

func fixture(t *testing.T, now time.Time) (*Service, *memPhotoRepo, *memMembers, *memCommunities, *recordingPublisher) {
	t.Helper()
	photos := newMemPhotoRepo()
	members := &memMembers{}
	communities := &memCommunities{byID: map[string]*domain.Community{}}
	pub := &recordingPublisher{}
	svc := New(photos, members, communities, fakeStorage{base: "https://cdn.example.com"}, fakeClock{t: now}, pub, domain.RevealAfterEndOnly)
	return svc, photos, members, communities, pub
}

func addCommunity(members *memMembers, communities *memCommunities, c *domain.Community, userID string) {
	communities.byID[c.ID] = c
	members.rows = append(members.rows, domain.Membership{
		CommunityID: c.ID, UserID: userID, Role: domain.RoleMember, Community: c,
	})
}

// --- Tests ---

func TestService_Capture(t *testing.T) {
	now := mustTime(t, "2025-06-01T12:00:00Z")

	t.Run("attaches_to_the_active_community", func(t *testing.T) {
		svc, photos, members, communities, pub := fixture(t, now)
		c := &domain.Community{ID: "c1", StartDate: tp(now.Add(-time.Hour)), EndDate: tp(now.Add(time.Hour))}
		addCommunity(members, communities, c, "u1")

		p, err := svc.Capture(context.Background(), CaptureCmd{ActorID: "u1", ObjectKey: "photos/x.jpg", ContentType: "image/jpeg"})
		assert.NoError(t, err)
		assert.Equal(t, "c1", *p.CommunityID)
		assert.Contains(t, pub.keys, "photo.captured")

		stored, _ := photos.GetByID(context.Background(), p.ID)
		assert.Equal(t, "c1", *stored.CommunityID)
	})

	t.Run("refused_when_nothing_active", func(t *testing.T) {
		svc, photos, members, communities, _ := fixture(t, now)
		ended := &domain.Community{ID: "c1", EndDate: tp(now.Add(-time.Hour))}
		addCommunity(members, communities, ended, "u1")

		_, err := svc.Capture(context.Background(), CaptureCmd{ActorID: "u1", ObjectKey: "photos/x.jpg", ContentType: "image/jpeg"})
		assert.Error(t, err)
		assert.Equal(t, domain.CodeInvalidState, err.(*domain.AppError).Code)
		assert.Empty(t, photos.byID, "nothing is stored on refusal")
	})

	t.Run("most_urgent_community_wins", func(t *testing.T) {
		svc, _, members, communities, _ := fixture(t, now)
		late := &domain.Community{ID: "late", StartDate: tp(now.Add(-time.Hour)), EndDate: tp(now.Add(9 * time.Hour))}
		soon := &domain.Community{ID: "soon", StartDate: tp(now.Add(-time.Hour)), EndDate: tp(now.Add(2 * time.Hour))}
		addCommunity(members, communities, late, "u1")
		addCommunity(members, communities, soon, "u1")

		p, err := svc.Capture(context.Background(), CaptureCmd{ActorID: "u1", ObjectKey: "photos/x.jpg", ContentType: "image/jpeg"})
		assert.NoError(t, err)
		assert.Equal(t, "soon", *p.CommunityID)
	})
}

func TestService_Gallery(t *testing.T) {
	now := mustTime(t, "2025-06-02T12:00:00Z")

	t.Run("denied_before_reveal_with_countdown", func(t *testing.T) {
		svc, _, members, communities, _ := fixture(t, now)
		c := &domain.Community{ID: "c1", StartDate: tp(now.Add(-time.Hour)), EndDate: tp(now.Add(30 * time.Minute))}
		addCommunity(members, communities, c, "u1")

		_, err := svc.Gallery(context.Background(), "c1", "u1")
		assert.Error(t, err)
		ae := err.(*domain.AppError)
		assert.Equal(t, domain.CodeForbidden, ae.Code)
		assert.Equal(t, "less than an hour", ae.Meta["remaining"])
	})

	t.Run("denied_forever_without_end_date", func(t *testing.T) {
		svc, _, members, communities, _ := fixture(t, now)
		c := &domain.Community{ID: "c1", StartDate: tp(now.Add(-48 * time.Hour))}
		addCommunity(members, communities, c, "u1")

		_, err := svc.Gallery(context.Background(), "c1", "u1")
		assert.Error(t, err)
		assert.Equal(t, domain.CodeForbidden, err.(*domain.AppError).Code)
	})

	t.Run("denied_for_non_members", func(t *testing.T) {
		svc, _, members, communities, _ := fixture(t, now)
		c := &domain.Community{ID: "c1", EndDate: tp(now.Add(-time.Hour))}
		addCommunity(members, communities, c, "u1")

		_, err := svc.Gallery(context.Background(), "c1", "stranger")
		assert.Error(t, err)
	})

	t.Run("revealed_after_end_newest_first_with_urls", func(t *testing.T) {
		svc, photos, members, communities, _ := fixture(t, now)
		c := &domain.Community{ID: "c1", EndDate: tp(now.Add(-time.Hour))}
		addCommunity(members, communities, c, "u1")

		cid := "c1"
		early, _ := domain.NewPhoto("u1", "photos/early.jpg", "image/jpeg", &cid, now.Add(-5*time.Hour))
		late, _ := domain.NewPhoto("u1", "photos/late.jpg", "image/jpeg", &cid, now.Add(-2*time.Hour))
		absolute, _ := domain.NewPhoto("u1", "https://elsewhere.example.com/a.jpg", "image/jpeg", &cid, now.Add(-3*time.Hour))
		_ = photos.Create(context.Background(), early)
		_ = photos.Create(context.Background(), late)
		_ = photos.Create(context.Background(), absolute)

		items, err := svc.Gallery(context.Background(), "c1", "u1")
		assert.NoError(t, err)
		assert.Len(t, items, 3)
		assert.Equal(t, late.ID, items[0].Photo.ID, "newest first")
		assert.Equal(t, "https://cdn.example.com/photos/late.jpg", items[0].URL)
		assert.Equal(t, "https://elsewhere.example.com/a.jpg", items[1].URL, "absolute refs pass through")
		assert.Equal(t, early.ID, items[2].Photo.ID)
	})
}

func TestService_Attach(t *testing.T) {
	now := mustTime(t, "2025-06-01T12:00:00Z")

	t.Run("owner_attaches_unassigned_photo", func(t *testing.T) {
		svc, photos, members, communities, _ := fixture(t, now)
		c := &domain.Community{ID: "c1", EndDate: tp(now.Add(time.Hour))}
		addCommunity(members, communities, c, "u1")

		p, _ := domain.NewPhoto("u1", "photos/a.jpg", "image/jpeg", nil, now)
		_ = photos.Create(context.Background(), p)

		got, err := svc.Attach(context.Background(), p.ID, "c1", "u1")
		assert.NoError(t, err)
		assert.Equal(t, "c1", *got.CommunityID)
	})

	t.Run("refuses_already_attached", func(t *testing.T) {
		svc, photos, members, communities, _ := fixture(t, now)
		c := &domain.Community{ID: "c1", EndDate: tp(now.Add(time.Hour))}
		addCommunity(members, communities, c, "u1")

		cid := "c0"
		p, _ := domain.NewPhoto("u1", "photos/a.jpg", "image/jpeg", &cid, now)
		_ = photos.Create(context.Background(), p)

		_, err := svc.Attach(context.Background(), p.ID, "c1", "u1")
		assert.Error(t, err)
		assert.Equal(t, domain.CodeInvalidState, err.(*domain.AppError).Code)
		assert.Equal(t, "c0", *p.CommunityID, "attachment unchanged")
	})

	t.Run("refuses_foreign_photo", func(t *testing.T) {
		svc, photos, members, communities, _ := fixture(t, now)
		c := &domain.Community{ID: "c1", EndDate: tp(now.Add(time.Hour))}
		addCommunity(members, communities, c, "u2")

		p, _ := domain.NewPhoto("u1", "photos/a.jpg", "image/jpeg", nil, now)
		_ = photos.Create(context.Background(), p)

		_, err := svc.Attach(context.Background(), p.ID, "c1", "u2")
		assert.Error(t, err)
		assert.Equal(t, domain.CodeForbidden, err.(*domain.AppError).Code)
	})
}

func TestService_NewUpload(t *testing.T) {
	now := mustTime(t, "2025-06-01T12:00:00Z")
	svc, _, _, _, _ := fixture(t, now)

	t.Run("presigns_image_upload", func(t *testing.T) {
		up, err := svc.NewUpload(context.Background(), "u1", "image/jpeg")
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(up.ObjectKey, "photos/"))
		assert.True(t, strings.HasSuffix(up.ObjectKey, ".jpg"))
		assert.Contains(t, up.PutURL, up.ObjectKey)
	})

	t.Run("rejects_non_image", func(t *testing.T) {
		_, err := svc.NewUpload(context.Background(), "u1", "application/pdf")
		assert.Error(t, err)
		assert.Equal(t, domain.CodeValidation, err.(*domain.AppError).Code)
	})
}
