package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayush2735/claynest-web-craft/internal/cart"
	"github.com/ayush2735/claynest-web-craft/internal/checkout"
	"github.com/ayush2735/claynest-web-craft/internal/inquiry"
	"github.com/ayush2735/claynest-web-craft/internal/repository"
	"github.com/ayush2735/claynest-web-craft/internal/storage"
	"github.com/ayush2735/claynest-web-craft/internal/validation"
	"github.com/ayush2735/claynest-web-craft/pkg/logger"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse acknowledges a mutation that returns no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Message: message,
	})
}

// respondServiceError converts err into a single JSON error. Unexpected errors
// are logged and their detail is not exposed.
func respondServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   vErr.Message,
			Code:    "validation_error",
			Message: vErr.Message,
			Fields:  vErr.Fields,
		})
	case errors.Is(err, checkout.ErrOrderCreation), errors.Is(err, checkout.ErrItemCreation):
		respondError(w, http.StatusBadGateway, "order_failed", checkout.MsgOrderFailed)
	case errors.Is(err, inquiry.ErrSubmit):
		respondError(w, http.StatusBadGateway, "inquiry_failed", inquiry.MsgSendFailed)
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, repository.ErrInquiryNotFound):
		respondError(w, http.StatusNotFound, "not_found", "inquiry not found")
	case errors.Is(err, storage.ErrImageNotFound):
		respondError(w, http.StatusNotFound, "not_found", "image not found")
	case errors.Is(err, storage.ErrUnsupportedImage):
		respondError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "only jpg, png, gif and webp images are accepted")
	case errors.Is(err, repository.ErrConflict):
		respondError(w, http.StatusConflict, "conflict", "the record is referenced by other data")
	case errors.Is(err, cart.ErrCartUnavailable):
		respondError(w, http.StatusServiceUnavailable, "cart_unavailable", "Your cart could not be loaded. Please try again.")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		logger.WithContext(r.Context(), log).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", getRequestID(r.Context())),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}
