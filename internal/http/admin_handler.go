package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/analytics"
	"github.com/ayush2735/claynest-web-craft/internal/catalog"
	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/inquiry"
	"github.com/ayush2735/claynest-web-craft/internal/orders"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductAdmin interface {
	List(ctx context.Context, category string) ([]*domain.Product, error)
	Create(ctx context.Context, in catalog.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalog.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderAdmin interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Get(ctx context.Context, id string) (*orders.Detail, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePaymentStatus(ctx context.Context, id, status string) error
}

type InquiryAdmin interface {
	List(ctx context.Context, status string) ([]*domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type Dashboard interface {
	Summary(ctx context.Context) (analytics.Summary, error)
}

// AdminHandler serves the back office endpoints. Routes are mounted behind
// AdminAuthMiddleware.
type AdminHandler struct {
	products  ProductAdmin
	orders    OrderAdmin
	inquiries InquiryAdmin
	dashboard Dashboard
	timeout   time.Duration
	logger    *zap.Logger
}

func NewAdminHandler(products ProductAdmin, orders OrderAdmin, inquiries InquiryAdmin, dashboard Dashboard, timeout time.Duration, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		products:  products,
		orders:    orders,
		inquiries: inquiries,
		dashboard: dashboard,
		timeout:   timeout,
		logger:    logger,
	}
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ProductResponse struct {
	Product *domain.Product `json:"product"`
	Message string          `json:"message"`
}

// ListProducts supports ?category= and a free text ?q= over name and category.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.products.List(ctx, r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, catalog.Search(products, r.URL.Query().Get("q")))
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.products.Create(ctx, in)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, ProductResponse{Product: p, Message: catalog.MsgProductAdded})
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.products.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, ProductResponse{Product: p, Message: catalog.MsgProductUpdated})
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.products.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: catalog.MsgProductDeleted})
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	list, err := h.orders.List(ctx)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	detail, err := h.orders.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.orders.UpdateStatus, orders.MsgStatusUpdated)
}

func (h *AdminHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.orders.UpdatePaymentStatus, orders.MsgPaymentStatusUpdated)
}

func (h *AdminHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	list, err := h.inquiries.List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.inquiries.UpdateStatus, inquiry.MsgStatusUpdated)
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	summary, err := h.dashboard.Summary(ctx)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *AdminHandler) updateStatus(w http.ResponseWriter, r *http.Request, update func(ctx context.Context, id, status string) error, message string) {
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := update(ctx, chi.URLParam(r, "id"), req.Status); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, MessageResponse{Message: message})
}
