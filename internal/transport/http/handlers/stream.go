package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blackout-app/backend/internal/application/community"
	"github.com/blackout-app/backend/internal/domain"
	"github.com/blackout-app/backend/internal/notify"
	"github.com/blackout-app/backend/internal/transport/http/middleware"
	"github.com/blackout-app/backend/internal/transport/http/response"
	"github.com/blackout-app/backend/internal/transport/http/validate"
)

const streamKeepAlive = 25 * time.Second

// StreamHandler serves the per-community SSE feed. Members see new photos
// and joins live while the event runs.
type StreamHandler struct {
	svc *community.Service
	hub *notify.Hub
}

func NewStreamHandler(svc *community.Service, hub *notify.Hub) *StreamHandler {
	return &StreamHandler{svc: svc, hub: hub}
}

func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	communityID := chi.URLParam(r, "community_id")
	if !validate.IsUUID(communityID) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"community_id": "must be uuid",
		}))
		return
	}

	// membership gate; Get refuses non-members
	if _, err := h.svc.Get(r.Context(), communityID, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.Err(w, r, domain.ErrUnavailable("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	msgs, cancel := h.hub.Subscribe(communityID)
	defer cancel()

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			// comment frame keeps proxies from closing the idle stream
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case m, open := <-msgs:
			if !open {
				return
			}
			data, err := json.Marshal(m)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", m.Event, data)
			flusher.Flush()
		}
	}
}
