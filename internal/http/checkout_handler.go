package http

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/checkout"
	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"go.uber.org/zap"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, cart checkout.Cart, form checkout.Form) (*domain.Order, error)
}

type CheckoutHandler struct {
	sessions CartSessions
	checkout OrderPlacer
	timeout  time.Duration
	logger   *zap.Logger
}

func NewCheckoutHandler(sessions CartSessions, placer OrderPlacer, timeout time.Duration, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		checkout: placer,
		timeout:  timeout,
		logger:   logger,
	}
}

type CheckoutResponse struct {
	OrderID  string `json:"order_id"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

type ConfirmationResponse struct {
	OrderID   string   `json:"order_id"`
	Message   string   `json:"message"`
	NextSteps []string `json:"next_steps"`
}

var confirmationSteps = []string{
	"You will receive an email with payment instructions shortly.",
	"Your order is processed once payment is confirmed.",
	"We will contact you with shipping details.",
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var form checkout.Form
	if !decodeJSON(w, r, &form) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, err := h.sessions.Get(ctx, getSessionID(r.Context()))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	order, err := h.checkout.PlaceOrder(ctx, store, form)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponse{
		OrderID:  order.ID,
		Message:  checkout.Message(nil),
		Redirect: "/order-confirmation?order_id=" + url.QueryEscape(order.ID),
	})
}

// Confirmation shows the confirmed order id and sends visitors without one back home.
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, ConfirmationResponse{
		OrderID:   orderID,
		Message:   "Thank you for your order!",
		NextSteps: confirmationSteps,
	})
}
