package dto

import "time"

type CreateCommunityReq struct {
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// UpdateCommunityReq distinguishes "leave alone" (field absent) from
// "clear" (explicit clear flag). Sending a date and its clear flag together
// is a validation error.
type UpdateCommunityReq struct {
	Name           *string    `json:"name,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	ClearStartDate bool       `json:"clear_start_date,omitempty"`
	ClearEndDate   bool       `json:"clear_end_date,omitempty"`
}

type CommunityResp struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedBy string     `json:"created_by"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// derived against the server clock at response time
	Phase           string `json:"phase"`
	CaptureEligible bool   `json:"capture_eligible"`
	RevealCountdown string `json:"reveal_countdown,omitempty"`
}

type MembershipResp struct {
	Role      string        `json:"role"`
	JoinedAt  time.Time     `json:"joined_at"`
	Community CommunityResp `json:"community"`
}

type JoinResp struct {
	AlreadyMember bool           `json:"already_member"`
	Membership    MembershipResp `json:"membership"`
}
