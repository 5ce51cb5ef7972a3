package dto

import "time"

type NewUploadReq struct {
	ContentType string `json:"content_type"`
}

type UploadResp struct {
	ObjectKey string `json:"object_key"`
	PutURL    string `json:"put_url"`
}

type CapturePhotoReq struct {
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type"`
}

type AttachPhotoReq struct {
	CommunityID string `json:"community_id"`
}

type PhotoResp struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CommunityID *string   `json:"community_id,omitempty"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type GalleryResp struct {
	CommunityID string      `json:"community_id"`
	Photos      []PhotoResp `json:"photos"`
}
