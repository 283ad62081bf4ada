package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/inquiry"
	"go.uber.org/zap"
)

type InquirySubmitter interface {
	Submit(ctx context.Context, f inquiry.Form) (*domain.Inquiry, error)
}

type InquiryHandler struct {
	inquiries InquirySubmitter
	timeout   time.Duration
	logger    *zap.Logger
}

func NewInquiryHandler(inquiries InquirySubmitter, timeout time.Duration, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiries: inquiries,
		timeout:   timeout,
		logger:    logger,
	}
}

type InquiryResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *InquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form inquiry.Form
	if !decodeJSON(w, r, &form) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	in, err := h.inquiries.Submit(ctx, form)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, InquiryResponse{ID: in.ID, Message: inquiry.Message(nil)})
}
