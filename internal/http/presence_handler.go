package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PresenceTracker interface {
	Heartbeat(ctx context.Context, visitorID string) (string, error)
	Count(ctx context.Context) (int64, error)
	Leave(ctx context.Context, visitorID string) error
}

type PresenceHandler struct {
	tracker PresenceTracker
	logger  *zap.Logger
}

func NewPresenceHandler(tracker PresenceTracker, logger *zap.Logger) *PresenceHandler {
	return &PresenceHandler{tracker: tracker, logger: logger}
}

type HeartbeatRequest struct {
	VisitorID string `json:"visitor_id"`
}

type PresenceResponse struct {
	VisitorID string `json:"visitor_id,omitempty"`
	Online    int64  `json:"online"`
}

// Heartbeat accepts an empty body; the tracker then assigns a visitor id.
func (h *PresenceHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	visitorID, err := h.tracker.Heartbeat(r.Context(), req.VisitorID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	online, err := h.tracker.Count(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, PresenceResponse{VisitorID: visitorID, Online: online})
}

func (h *PresenceHandler) Count(w http.ResponseWriter, r *http.Request) {
	online, err := h.tracker.Count(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, PresenceResponse{Online: online})
}

func (h *PresenceHandler) Leave(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.Leave(r.Context(), chi.URLParam(r, "visitorID")); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
