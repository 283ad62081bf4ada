package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/validation"
	"github.com/ayush2735/claynest-web-craft/pkg/logger"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	EventOrderPlaced = "order.placed"

	defaultWriteTimeout = 10 * time.Second
)

var tracer = otel.Tracer("github.com/ayush2735/claynest-web-craft/internal/checkout")

// OrderBackend persists orders. DeleteOrder is only used to undo an order
// whose items could not be written.
type OrderBackend interface {
	CreateOrder(ctx context.Context, in domain.NewOrder) (*domain.Order, error)
	CreateOrderItems(ctx context.Context, items []domain.OrderItem) error
	DeleteOrder(ctx context.Context, id string) error
}

type EventRecorder interface {
	InsertOutboxEvent(ctx context.Context, aggregateID, eventType string, payload []byte) error
}

// Cart is the part of a session cart checkout needs. *cart.Store satisfies it.
// RemoveLines drops exactly the ordered lines so that lines added while the
// order is written stay in the cart.
type Cart interface {
	Lines() []domain.CartLine
	RemoveLines(ordered []domain.CartLine)
}

// Form is the contact and shipping data collected at checkout.
type Form struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	CustomerPhone   string `json:"customer_phone"`
	CompanyName     string `json:"company_name"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Notes           string `json:"notes"`
}

func (f Form) trimmed() Form {
	return Form{
		CustomerName:    strings.TrimSpace(f.CustomerName),
		CustomerEmail:   strings.TrimSpace(f.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(f.CustomerPhone),
		CompanyName:     strings.TrimSpace(f.CompanyName),
		ShippingAddress: strings.TrimSpace(f.ShippingAddress),
		Notes:           strings.TrimSpace(f.Notes),
	}
}

type Service struct {
	orders       OrderBackend
	events       EventRecorder
	logger       *zap.Logger
	now          func() time.Time
	writeTimeout time.Duration
}

// NewService builds the checkout service. events may be nil, in which case no
// order.placed event is recorded.
func NewService(orders OrderBackend, events EventRecorder, logger *zap.Logger) *Service {
	return &Service{
		orders:       orders,
		events:       events,
		logger:       logger,
		now:          time.Now,
		writeTimeout: defaultWriteTimeout,
	}
}

// PlaceOrder turns the cart into an order and its items. The order is written
// first and its items second in one batch. When the items cannot be written
// the order is deleted again. Only after both writes succeed are the ordered
// lines removed from the cart.
func (s *Service) PlaceOrder(ctx context.Context, cart Cart, form Form) (order *domain.Order, err error) {
	ctx, span := tracer.Start(ctx, "checkout.PlaceOrder")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("order.id", order.ID))
		}
		span.End()
	}()

	log := logger.WithContext(ctx, s.logger)

	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, validation.New(MsgEmptyCart, ErrEmptyCart)
	}

	form = form.trimmed()
	if err := validation.Struct(form, MsgMissingFields); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}

	// Once submitted, the writes outlive the request: a client going away must
	// not cancel an insert that may already have committed.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
	defer cancel()

	order, err = s.orders.CreateOrder(wctx, domain.NewOrder{
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		CustomerPhone:   form.CustomerPhone,
		CompanyName:     form.CompanyName,
		ShippingAddress: form.ShippingAddress,
		TotalAmount:     total,
		Notes:           form.Notes,
	})
	if err != nil {
		log.Error("order creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrOrderCreation, err)
	}
	log = log.With(zap.String("order_id", order.ID))

	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			OrderID:    order.ID,
			ProductID:  l.Product.ID,
			Quantity:   l.Quantity,
			UnitPrice:  l.Product.Price,
			TotalPrice: l.LineTotal(),
		})
	}

	if err := s.orders.CreateOrderItems(wctx, items); err != nil {
		log.Error("order items creation failed", zap.Error(err))
		dctx, dcancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
		defer dcancel()
		if delErr := s.orders.DeleteOrder(dctx, order.ID); delErr != nil {
			log.Error("failed to delete order without items", zap.Error(delErr))
			return nil, fmt.Errorf("%w: %w: %w", ErrItemCreation, ErrOrphanedOrder, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrItemCreation, err)
	}

	s.recordPlaced(wctx, log, order, lines)
	cart.RemoveLines(lines)
	log.Info("order placed", zap.Int("items", len(items)), zap.String("total_amount", total.String()))

	return order, nil
}

type placedItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type placedEvent struct {
	OrderID         string          `json:"order_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CompanyName     string          `json:"company_name,omitempty"`
	ShippingAddress string          `json:"shipping_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Items           []placedItem    `json:"items"`
	PlacedAt        time.Time       `json:"placed_at"`
}

// recordPlaced writes the order.placed event. Failures are logged only; the
// order itself is already complete.
func (s *Service) recordPlaced(ctx context.Context, log *zap.Logger, order *domain.Order, lines []domain.CartLine) {
	if s.events == nil {
		return
	}

	ev := placedEvent{
		OrderID:         order.ID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CompanyName:     order.CompanyName,
		ShippingAddress: order.ShippingAddress,
		TotalAmount:     order.TotalAmount,
		PlacedAt:        s.now().UTC(),
	}
	for _, l := range lines {
		ev.Items = append(ev.Items, placedItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Product.Price,
			TotalPrice:  l.LineTotal(),
		})
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Warn("failed to marshal order event", zap.Error(err))
		return
	}
	if err := s.events.InsertOutboxEvent(ctx, order.ID, EventOrderPlaced, payload); err != nil {
		log.Warn("failed to record order event", zap.Error(err))
	}
}
