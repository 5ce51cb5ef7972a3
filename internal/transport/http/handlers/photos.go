package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blackout-app/backend/internal/application/photo"
	"github.com/blackout-app/backend/internal/domain"
	"github.com/blackout-app/backend/internal/transport/http/dto"
	"github.com/blackout-app/backend/internal/transport/http/middleware"
	"github.com/blackout-app/backend/internal/transport/http/response"
	"github.com/blackout-app/backend/internal/transport/http/validate"
)

type PhotosHandler struct {
	svc *photo.Service
}

func NewPhotosHandler(svc *photo.Service) *PhotosHandler {
	return &PhotosHandler{svc: svc}
}

// NewUpload hands the client a presigned PUT; the image bytes never pass
// through this service.
func (h *PhotosHandler) NewUpload(w http.ResponseWriter, r *http.Request) {
	var req dto.NewUploadReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid json body"))
		return
	}

	up, err := h.svc.NewUpload(r.Context(), middleware.UserID(r), req.ContentType)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusCreated, dto.UploadResp{
		ObjectKey: up.ObjectKey,
		PutURL:    up.PutURL,
	})
}

func (h *PhotosHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req dto.CapturePhotoReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid json body"))
		return
	}

	p, err := h.svc.Capture(r.Context(), photo.CaptureCmd{
		ActorID:     middleware.UserID(r),
		ObjectKey:   req.ObjectKey,
		ContentType: req.ContentType,
	})
	if err != nil {
		var ae *domain.AppError
		if errors.As(err, &ae) && ae.Code == domain.CodeInvalidState {
			middleware.PhotosCapturedTotal.WithLabelValues("no_active_community").Inc()
		}
		response.Err(w, r, err)
		return
	}

	middleware.PhotosCapturedTotal.WithLabelValues("captured").Inc()
	response.Data(w, http.StatusCreated, dto.ToPhotoResp(p, h.svc.ResolveURL(p.ObjectKey)))
}

func (h *PhotosHandler) Attach(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "photo_id")
	if !validate.IsUUID(photoID) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"photo_id": "must be uuid",
		}))
		return
	}

	var req dto.AttachPhotoReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid json body"))
		return
	}
	if !validate.IsUUID(req.CommunityID) {
		response.Err(w, r, domain.ErrValidationMeta("invalid field", map[string]string{
			"community_id": "must be uuid",
		}))
		return
	}

	p, err := h.svc.Attach(r.Context(), photoID, req.CommunityID, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.ToPhotoResp(p, h.svc.ResolveURL(p.ObjectKey)))
}

// Gallery is the reveal gate over a community's photos. Denials surface the
// countdown in the error meta so the client can show "Next reveal in ...".
func (h *PhotosHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	communityID := chi.URLParam(r, "community_id")
	if !validate.IsUUID(communityID) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"community_id": "must be uuid",
		}))
		return
	}

	items, err := h.svc.Gallery(r.Context(), communityID, middleware.UserID(r))
	if err != nil {
		var ae *domain.AppError
		if errors.As(err, &ae) && ae.Code == domain.CodeForbidden {
			middleware.GalleryRequestsTotal.WithLabelValues("locked").Inc()
		}
		response.Err(w, r, err)
		return
	}

	middleware.GalleryRequestsTotal.WithLabelValues("revealed").Inc()
	photos := make([]dto.PhotoResp, 0, len(items))
	for _, it := range items {
		photos = append(photos, dto.ToPhotoResp(it.Photo, it.URL))
	}
	response.Data(w, http.StatusOK, dto.GalleryResp{
		CommunityID: communityID,
		Photos:      photos,
	})
}
