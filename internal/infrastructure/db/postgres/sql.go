package postgres

const insertCommunitySQL = `
INSERT INTO communities (
  id, name, created_by, start_date, end_date, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7)
`

const getCommunitySQL = `
SELECT id, name, created_by, start_date, end_date, created_at, updated_at
FROM communities WHERE id = $1
`

const updateCommunitySQL = `
UPDATE communities SET
  name=$2, start_date=$3, end_date=$4, updated_at=$5
WHERE id=$1
`

const deleteCommunitySQL = `DELETE FROM communities WHERE id = $1`

const insertMembershipSQL = `
INSERT INTO memberships (community_id, user_id, role, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (community_id, user_id) DO NOTHING
`

const deleteMembershipSQL = `
DELETE FROM memberships WHERE community_id = $1 AND user_id = $2
`

const deleteMembershipsByCommunitySQL = `
DELETE FROM memberships WHERE community_id = $1
`

const getMembershipSQL = `
SELECT community_id, user_id, role, created_at
FROM memberships WHERE community_id = $1 AND user_id = $2
`

const listMembershipsByUserSQL = `
SELECT m.community_id, m.user_id, m.role, m.created_at,
       c.id, c.name, c.created_by, c.start_date, c.end_date, c.created_at, c.updated_at
FROM memberships m
JOIN communities c ON c.id = m.community_id
WHERE m.user_id = $1
ORDER BY m.created_at ASC
`

const insertPhotoSQL = `
INSERT INTO photos (id, user_id, community_id, object_key, content_type, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`

const getPhotoSQL = `
SELECT id, user_id, community_id, object_key, content_type, created_at
FROM photos WHERE id = $1
`

const listPhotosByCommunitySQL = `
SELECT id, user_id, community_id, object_key, content_type, created_at
FROM photos
WHERE community_id = $1
ORDER BY created_at DESC, id DESC
`

const attachPhotoSQL = `
UPDATE photos SET community_id = $2
WHERE id = $1 AND community_id IS NULL
`

const detachPhotosByCommunitySQL = `
UPDATE photos SET community_id = NULL WHERE community_id = $1
`

const attachUnassignedPhotosSQL = `
UPDATE photos SET community_id = $2
WHERE user_id = $1
  AND community_id IS NULL
  AND created_at >= $3
  AND created_at <= $4
`
