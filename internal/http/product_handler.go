package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Catalog interface {
	List(ctx context.Context, category string) ([]*domain.Product, error)
	Featured(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
	timeout time.Duration
	logger  *zap.Logger
}

func NewProductHandler(catalog Catalog, timeout time.Duration, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
		logger:  logger,
	}
}

// ProductView adds the image a storefront should display.
type ProductView struct {
	*domain.Product
	DisplayImage string `json:"display_image"`
	MinQuantity  int    `json:"min_quantity"`
}

func newProductView(p *domain.Product) ProductView {
	return ProductView{Product: p, DisplayImage: p.DisplayImage(), MinQuantity: p.MinQuantity()}
}

func newProductViews(products []*domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.List(ctx, r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, newProductViews(products))
}

func (h *ProductHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Featured(ctx)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, newProductViews(products))
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, newProductView(product))
}
