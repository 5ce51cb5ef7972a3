package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleMember }

type Community struct {
	ID        string
	Name      string
	CreatedBy string

	// Both optional. A community with neither date is unscheduled and can
	// never capture or reveal until an admin sets at least an end date.
	StartDate *time.Time
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCommunity(createdBy, name string, start, end *time.Time, now time.Time) (*Community, error) {
	createdBy = strings.TrimSpace(createdBy)
	name = strings.TrimSpace(name)

	if createdBy == "" {
		return nil, ErrValidation("created_by is required")
	}
	if name == "" || len(name) > 80 {
		return nil, ErrValidation("name is required and must be <= 80 chars")
	}
	if start != nil && end != nil && !end.After(*start) {
		return nil, ErrValidation("end_date must be after start_date")
	}

	c := &Community{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if start != nil {
		t := start.UTC()
		c.StartDate = &t
	}
	if end != nil {
		t := end.UTC()
		c.EndDate = &t
	}
	return c, nil
}

// PhaseAt classifies the community's window against one reading of now.
// The end boundary is inclusive: now == end_date is still active.
// All comparisons are instant-precision UTC; never compare whole days.
func (c *Community) PhaseAt(now time.Time) Phase {
	if c.StartDate == nil && c.EndDate == nil {
		return PhaseUnscheduled
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return PhaseUpcoming
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return PhaseEnded
	}
	return PhaseActive
}

// CaptureEligible reports whether new photos may attach to this community.
func (c *Community) CaptureEligible(now time.Time) bool {
	return c.PhaseAt(now) == PhaseActive
}

// Revealable reports whether the community's photos may be viewed. A
// community without an end date never reveals, under either policy.
func (c *Community) Revealable(now time.Time, policy RevealPolicy) bool {
	if c.EndDate == nil {
		return false
	}
	switch c.PhaseAt(now) {
	case PhaseEnded:
		return true
	case PhaseActive:
		return policy == RevealDuringOrAfter
	default:
		return false
	}
}

// ApplyUpdate mutates name/dates in place. Nil pointers leave a field
// untouched; clearStart/clearEnd unset a date explicitly.
func (c *Community) ApplyUpdate(name *string, start, end *time.Time, clearStart, clearEnd bool, now time.Time) error {
	if name != nil {
		v := strings.TrimSpace(*name)
		if v == "" || len(v) > 80 {
			return ErrValidation("name must be non-empty and <= 80 chars")
		}
		c.Name = v
	}
	if clearStart {
		c.StartDate = nil
	} else if start != nil {
		t := start.UTC()
		c.StartDate = &t
	}
	if clearEnd {
		c.EndDate = nil
	} else if end != nil {
		t := end.UTC()
		c.EndDate = &t
	}
	if c.StartDate != nil && c.EndDate != nil && !c.EndDate.After(*c.StartDate) {
		return ErrValidation("end_date must be after start_date")
	}
	c.UpdatedAt = now.UTC()
	return nil
}

type Membership struct {
	CommunityID string
	UserID      string
	Role        Role
	CreatedAt   time.Time

	// Community is populated on reads that need window decisions.
	// All communities in one snapshot come from the same point-in-time read.
	Community *Community
}

func (m *Membership) IsAdmin() bool { return m.Role == RoleAdmin }
