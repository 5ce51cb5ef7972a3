package photo

import "time"

// PhotoCapturedPayload is the business payload for routing key: photo.captured.
// The realtime hub fans it out to gallery subscribers of the community.
type PhotoCapturedPayload struct {
	PhotoID     string    `json:"photo_id"`
	CommunityID string    `json:"community_id"`
	UserID      string    `json:"user_id"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
