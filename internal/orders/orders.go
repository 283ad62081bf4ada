package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/validation"
	"go.uber.org/zap"
)

const (
	MsgStatusUpdated        = "Order status updated"
	MsgPaymentStatusUpdated = "Payment status updated"
)

var ErrInvalidStatus = errors.New("invalid order status")

type Store interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

type Detail struct {
	*domain.Order
	Items []domain.OrderItem `json:"items"`
}

// Service is the back office view of placed orders.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.store.ListOrders(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListOrderItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	if items == nil {
		items = []domain.OrderItem{}
	}
	return &Detail{Order: order, Items: items}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	st := domain.OrderStatus(status)
	if !st.Valid() {
		return validation.New(fmt.Sprintf("Unknown order status %q", status), ErrInvalidStatus)
	}
	if err := s.store.UpdateOrderStatus(ctx, id, st); err != nil {
		return err
	}
	s.logger.Info("order status updated", zap.String("order_id", id), zap.String("status", status))
	return nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	st := domain.PaymentStatus(status)
	if !st.Valid() {
		return validation.New(fmt.Sprintf("Unknown payment status %q", status), ErrInvalidStatus)
	}
	if err := s.store.UpdatePaymentStatus(ctx, id, st); err != nil {
		return err
	}
	s.logger.Info("payment status updated", zap.String("order_id", id), zap.String("payment_status", status))
	return nil
}
