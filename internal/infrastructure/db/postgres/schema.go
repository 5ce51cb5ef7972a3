package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the tables if they do not exist. Dev and test
// environments run this at startup; production runs real migrations.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS communities (
  id UUID PRIMARY KEY,
  name TEXT NOT NULL,
  created_by TEXT NOT NULL,

  start_date TIMESTAMPTZ NULL,
  end_date TIMESTAMPTZ NULL,

  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`,
		`
CREATE TABLE IF NOT EXISTS memberships (
  community_id UUID NOT NULL REFERENCES communities(id),
  user_id TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'member',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

  PRIMARY KEY (community_id, user_id)
);
`,
		`
CREATE TABLE IF NOT EXISTS photos (
  id UUID PRIMARY KEY,
  user_id TEXT NOT NULL,
  community_id UUID NULL REFERENCES communities(id),
  object_key TEXT NOT NULL,
  content_type TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`,
		`CREATE INDEX IF NOT EXISTS idx_memberships_user ON memberships (user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_community_created ON photos (community_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_owner_unassigned ON photos (user_id, created_at) WHERE community_id IS NULL;`,
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
