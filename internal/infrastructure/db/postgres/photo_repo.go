package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/blackout-app/backend/internal/domain"
)

type PhotoRepo struct {
	db *sql.DB
}

func NewPhotoRepo(db *sql.DB) *PhotoRepo { return &PhotoRepo{db: db} }

func (r *PhotoRepo) Create(ctx context.Context, p *domain.Photo) error {
	_, err := r.db.ExecContext(ctx, insertPhotoSQL,
		p.ID, p.UserID, p.CommunityID, p.ObjectKey, p.ContentType, p.CreatedAt,
	)
	return err
}

func (r *PhotoRepo) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	row := r.db.QueryRowContext(ctx, getPhotoSQL, id)

	var p domain.Photo
	err := row.Scan(&p.ID, &p.UserID, &p.CommunityID, &p.ObjectKey, &p.ContentType, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("photo not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PhotoRepo) ListByCommunity(ctx context.Context, communityID string) ([]*domain.Photo, error) {
	rows, err := r.db.QueryContext(ctx, listPhotosByCommunitySQL, communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.UserID, &p.CommunityID, &p.ObjectKey, &p.ContentType, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Attach sets community_id only when the photo is still unassigned. The
// WHERE clause is the guard; a raced or already attached photo reports
// attached=false without touching the row.
func (r *PhotoRepo) Attach(ctx context.Context, photoID, communityID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, attachPhotoSQL, photoID, communityID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AttachUnassigned sweeps the owner's unassigned photos created inside
// [from, to] into the community. Already attached photos are never touched.
func (r *PhotoRepo) AttachUnassigned(ctx context.Context, ownerID, communityID string, from, to time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, attachUnassignedPhotosSQL, ownerID, communityID, from, to)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
