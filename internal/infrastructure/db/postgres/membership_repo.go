package postgres

import (
	"context"
	"database/sql"

	"github.com/blackout-app/backend/internal/domain"
)

type MembershipRepo struct {
	db *sql.DB
}

func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{db: db} }

// Add inserts the membership. A duplicate (community, user) pair is not an
// error: ON CONFLICT DO NOTHING reports created=false and the caller treats
// the join as already done.
func (r *MembershipRepo) Add(ctx context.Context, m domain.Membership) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertMembershipSQL,
		m.CommunityID, m.UserID, string(m.Role), m.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MembershipRepo) Remove(ctx context.Context, communityID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteMembershipSQL, communityID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MembershipRepo) Get(ctx context.Context, communityID, userID string) (*domain.Membership, error) {
	row := r.db.QueryRowContext(ctx, getMembershipSQL, communityID, userID)

	var m domain.Membership
	var role string
	err := row.Scan(&m.CommunityID, &m.UserID, &role, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Role = domain.Role(role)
	if !m.Role.Valid() {
		return nil, domain.ErrInvalidState("invalid role in db")
	}
	return &m, nil
}

// ListByUser loads the user's memberships with their communities in a single
// query, so every window in the snapshot reflects the same instant.
func (r *MembershipRepo) ListByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx, listMembershipsByUserSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var role string
		var c domain.Community
		if err := rows.Scan(
			&m.CommunityID, &m.UserID, &role, &m.CreatedAt,
			&c.ID, &c.Name, &c.CreatedBy, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)
		m.Community = &c
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
