package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blackout-app/backend/internal/application/community"
	"github.com/blackout-app/backend/internal/domain"
	"github.com/blackout-app/backend/internal/transport/http/dto"
	"github.com/blackout-app/backend/internal/transport/http/middleware"
	"github.com/blackout-app/backend/internal/transport/http/response"
	"github.com/blackout-app/backend/internal/transport/http/validate"
)

type Clock interface{ Now() time.Time }

type CommunitiesHandler struct {
	svc    *community.Service
	clock  Clock
	reveal domain.RevealPolicy
}

func NewCommunitiesHandler(svc *community.Service, clock Clock, reveal domain.RevealPolicy) *CommunitiesHandler {
	if reveal == "" {
		reveal = domain.RevealAfterEndOnly
	}
	return &CommunitiesHandler{svc: svc, clock: clock, reveal: reveal}
}

func (h *CommunitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCommunityReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid json body"))
		return
	}

	c, err := h.svc.Create(r.Context(), community.CreateCmd{
		ActorID:   middleware.UserID(r),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusCreated, dto.ToCommunityResp(c, h.clock.Now().UTC(), h.reveal))
}

func (h *CommunitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "community_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"community_id": "must be uuid",
		}))
		return
	}

	c, err := h.svc.Get(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.ToCommunityResp(c, h.clock.Now().UTC(), h.reveal))
}

func (h *CommunitiesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "community_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"community_id": "must be uuid",
		}))
		return
	}

	var req dto.UpdateCommunityReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidation("invalid json body"))
		return
	}
	if req.StartDate != nil && req.ClearStartDate {
		response.Err(w, r, domain.ErrValidationMeta("conflicting fields", map[string]string{
			"start_date": "cannot both set and clear",
		}))
		return
	}
	if req.EndDate != nil && req.ClearEndDate {
		response.Err(w, r, domain.ErrValidationMeta("conflicting fields", map[string]string{
			"end_date": "cannot both set and clear",
		}))
		return
	}

	c, err := h.svc.Update(r.Context(), community.UpdateCmd{
		ActorID:     middleware.UserID(r),
		CommunityID: id,
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ClearStart:  req.ClearStartDate,
		ClearEnd:    req.ClearEndDate,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.ToCommunityResp(c, h.clock.Now().UTC(), h.reveal))
}

func (h *CommunitiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "community_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"community_id": "must be uuid",
		}))
		return
	}

	if err := h.svc.Delete(r.Context(), id, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CommunitiesHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "community_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"community_id": "must be uuid",
		}))
		return
	}

	res, err := h.svc.Join(r.Context(), id, middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	status := http.StatusCreated
	if res.AlreadyMember {
		status = http.StatusOK
	}
	response.Data(w, status, dto.JoinResp{
		AlreadyMember: res.AlreadyMember,
		Membership:    dto.ToMembershipResp(res.Membership, h.clock.Now().UTC(), h.reveal),
	})
}

func (h *CommunitiesHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "community_id")
	if !validate.IsUUID(id) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"community_id": "must be uuid",
		}))
		return
	}

	if err := h.svc.Leave(r.Context(), id, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMine returns all of the caller's communities with derived phases, so
// the client can tell apart captureable, pending, and revealed events in
// one call.
func (h *CommunitiesHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.svc.ListMine(r.Context(), middleware.UserID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}

	now := h.clock.Now().UTC()
	out := make([]dto.MembershipResp, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, dto.ToMembershipResp(m, now, h.reveal))
	}
	response.Data(w, http.StatusOK, out)
}
