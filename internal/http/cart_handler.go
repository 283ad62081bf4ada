package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/cart"
	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartSessions interface {
	Get(ctx context.Context, sessionID string) (*cart.Store, error)
}

type ProductGetter interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CartHandler struct {
	sessions CartSessions
	products ProductGetter
	timeout  time.Duration
	logger   *zap.Logger
}

func NewCartHandler(sessions CartSessions, products ProductGetter, timeout time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		products: products,
		timeout:  timeout,
		logger:   logger,
	}
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	domain.CartSnapshot
	Message string `json:"message,omitempty"`
}

// store loads the session cart, writing the error response when it cannot.
func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) (*cart.Store, bool) {
	store, err := h.sessions.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return nil, false
	}
	return store, true
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, store *cart.Store, message string) {
	respondJSON(w, http.StatusOK, CartResponse{
		CartSnapshot: store.Snapshot(getSessionID(r.Context())),
		Message:      message,
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	h.respondCart(w, r, store, "")
}

// AddItem adds a product to the session cart. A missing quantity means the
// product's minimum order quantity.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.products.Get(ctx, req.ProductID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	quantity, err := cart.ResolveAddQuantity(*product, req.Quantity)
	if err != nil {
		var minErr *cart.MinimumQuantityError
		if errors.As(err, &minErr) {
			respondError(w, http.StatusBadRequest, "minimum_quantity", minErr.Error())
			return
		}
		respondServiceError(w, r, h.logger, err)
		return
	}

	store, ok := h.store(w, r)
	if !ok {
		return
	}
	store.Add(*product, quantity)
	h.respondCart(w, r, store, fmt.Sprintf("Added %d %s to cart", quantity, product.Name))
}

// UpdateItem sets a line's quantity. Values below the product minimum are raised
// to it and unknown products leave the cart unchanged.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	store.UpdateQuantity(chi.URLParam(r, "productID"), req.Quantity)
	h.respondCart(w, r, store, "")
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	store.Remove(chi.URLParam(r, "productID"))
	h.respondCart(w, r, store, "Item removed from cart")
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	store.Clear()
	h.respondCart(w, r, store, "Cart cleared")
}
