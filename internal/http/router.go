package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Products  *ProductHandler
	Cart      *CartHandler
	Checkout  *CheckoutHandler
	Inquiries *InquiryHandler
	Presence  *PresenceHandler
	Images    *ImageHandler
	Admin     *AdminHandler
}

type RouterConfig struct {
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	AdminSecret    []byte
	Logger         *zap.Logger
}

// NewRouter mounts the storefront and admin API and wraps it for tracing.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	accessLog := cfg.Logger
	if accessLog == nil {
		accessLog = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(accessLog))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/order-confirmation", h.Checkout.Confirmation)
	r.Get("/images/{name}", h.Images.Serve)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.ListProducts)
			r.Get("/featured", h.Products.FeaturedProducts)
			r.Get("/{id}", h.Products.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.SessionTTL))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Delete("/", h.Cart.ClearCart)
				r.Post("/items", h.Cart.AddItem)
				r.Put("/items/{productID}", h.Cart.UpdateItem)
				r.Delete("/items/{productID}", h.Cart.RemoveItem)
			})
			r.Post("/checkout", h.Checkout.Checkout)
		})

		r.Post("/inquiries", h.Inquiries.Submit)

		r.Route("/presence", func(r chi.Router) {
			r.Get("/", h.Presence.Count)
			r.Post("/", h.Presence.Heartbeat)
			r.Delete("/{visitorID}", h.Presence.Leave)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminSecret))

			r.Get("/products", h.Admin.ListProducts)
			r.Post("/products", h.Admin.CreateProduct)
			r.Post("/products/images", h.Images.Upload)
			r.Put("/products/{id}", h.Admin.UpdateProduct)
			r.Delete("/products/{id}", h.Admin.DeleteProduct)

			r.Get("/orders", h.Admin.ListOrders)
			r.Get("/orders/{id}", h.Admin.GetOrder)
			r.Patch("/orders/{id}/status", h.Admin.UpdateOrderStatus)
			r.Patch("/orders/{id}/payment-status", h.Admin.UpdatePaymentStatus)

			r.Get("/inquiries", h.Admin.ListInquiries)
			r.Patch("/inquiries/{id}/status", h.Admin.UpdateInquiryStatus)

			r.Get("/analytics", h.Admin.Analytics)
		})
	})

	return otelhttp.NewHandler(r, "claynest-storefront")
}
