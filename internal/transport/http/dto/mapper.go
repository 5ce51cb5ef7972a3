package dto

import (
	"time"

	"github.com/blackout-app/backend/internal/domain"
)

func ToCommunityResp(c *domain.Community, now time.Time, policy domain.RevealPolicy) CommunityResp {
	decision := domain.GalleryAccess(c, now, policy)

	return CommunityResp{
		ID:        c.ID,
		Name:      c.Name,
		CreatedBy: c.CreatedBy,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,

		Phase:           string(c.PhaseAt(now)),
		CaptureEligible: c.CaptureEligible(now),
		RevealCountdown: decision.Countdown,
	}
}

func ToMembershipResp(m domain.Membership, now time.Time, policy domain.RevealPolicy) MembershipResp {
	out := MembershipResp{
		Role:     string(m.Role),
		JoinedAt: m.CreatedAt,
	}
	if m.Community != nil {
		out.Community = ToCommunityResp(m.Community, now, policy)
	}
	return out
}

func ToPhotoResp(p *domain.Photo, url string) PhotoResp {
	return PhotoResp{
		ID:          p.ID,
		UserID:      p.UserID,
		CommunityID: p.CommunityID,
		URL:         url,
		ContentType: p.ContentType,
		CreatedAt:   p.CreatedAt,
	}
}
