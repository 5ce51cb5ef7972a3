package community

import "time"

// CommunityCreatedPayload is the business payload for routing key: community.created
type CommunityCreatedPayload struct {
	CommunityID string     `json:"community_id"`
	Name        string     `json:"name"`
	CreatedBy   string     `json:"created_by"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Backfilled  int        `json:"backfilled,omitempty"`
}

// CommunityDeletedPayload is the business payload for routing key: community.deleted
type CommunityDeletedPayload struct {
	CommunityID string `json:"community_id"`
	DeletedBy   string `json:"deleted_by"`
}

// MemberJoinedPayload is the business payload for routing key: member.joined
type MemberJoinedPayload struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

// MemberLeftPayload is the business payload for routing key: member.left
type MemberLeftPayload struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
}
