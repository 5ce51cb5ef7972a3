package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blackout-app/backend/internal/domain"
)

type CommunityRepo struct {
	db *sql.DB
}

func NewCommunityRepo(db *sql.DB) *CommunityRepo { return &CommunityRepo{db: db} }

// Create persists the community together with the creator's admin membership.
// Either both rows land or neither does.
func (r *CommunityRepo) Create(ctx context.Context, c *domain.Community, creator domain.Membership) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.ExecContext(ctx, insertCommunitySQL,
		c.ID, c.Name, c.CreatedBy, c.StartDate, c.EndDate, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, insertMembershipSQL,
		creator.CommunityID, creator.UserID, string(creator.Role), creator.CreatedAt,
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create community: %w", err)
	}
	return nil
}

func (r *CommunityRepo) GetByID(ctx context.Context, id string) (*domain.Community, error) {
	row := r.db.QueryRowContext(ctx, getCommunitySQL, id)

	var c domain.Community
	err := row.Scan(&c.ID, &c.Name, &c.CreatedBy, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("community not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommunityRepo) Update(ctx context.Context, c *domain.Community) error {
	res, err := r.db.ExecContext(ctx, updateCommunitySQL,
		c.ID, c.Name, c.StartDate, c.EndDate, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("community not found")
	}
	return nil
}

// Delete removes the community, its memberships, and detaches its photos.
// Photos survive as unassigned rows; uploaded images are never dropped here.
func (r *CommunityRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.ExecContext(ctx, deleteMembershipsByCommunitySQL, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, detachPhotosByCommunitySQL, id); err != nil {
		_ = tx.Rollback()
		return err
	}

	res, err := tx.ExecContext(ctx, deleteCommunitySQL, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if n == 0 {
		_ = tx.Rollback()
		return domain.ErrNotFound("community not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete community: %w", err)
	}
	return nil
}
