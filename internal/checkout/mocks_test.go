package checkout

import (
	"context"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
)

// MockOrderBackend records every call made by the checkout service.
type MockOrderBackend struct {
	CreateOrderErr error
	CreateItemsErr error
	DeleteErr      error

	// OnCreateItems runs before items are written, while the order already exists.
	OnCreateItems func()

	CreatedOrders []domain.NewOrder
	CreatedItems  []domain.OrderItem
	DeletedIDs    []string
	Calls         []string
}

func (m *MockOrderBackend) CreateOrder(ctx context.Context, in domain.NewOrder) (*domain.Order, error) {
	m.Calls = append(m.Calls, "CreateOrder")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.CreateOrderErr != nil {
		return nil, m.CreateOrderErr
	}
	m.CreatedOrders = append(m.CreatedOrders, in)
	return &domain.Order{
		ID:              "order-1",
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		ShippingAddress: in.ShippingAddress,
		TotalAmount:     in.TotalAmount,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
	}, nil
}

func (m *MockOrderBackend) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	m.Calls = append(m.Calls, "CreateOrderItems")
	if m.OnCreateItems != nil {
		m.OnCreateItems()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.CreateItemsErr != nil {
		return m.CreateItemsErr
	}
	m.CreatedItems = append(m.CreatedItems, items...)
	return nil
}

func (m *MockOrderBackend) DeleteOrder(_ context.Context, id string) error {
	m.Calls = append(m.Calls, "DeleteOrder")
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedIDs = append(m.DeletedIDs, id)
	return nil
}

type recordedEvent struct {
	AggregateID string
	EventType   string
	Payload     []byte
}

type MockEventRecorder struct {
	Err    error
	Events []recordedEvent
}

func (m *MockEventRecorder) InsertOutboxEvent(_ context.Context, aggregateID, eventType string, payload []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, recordedEvent{aggregateID, eventType, payload})
	return nil
}
