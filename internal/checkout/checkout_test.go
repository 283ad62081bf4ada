package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ayush2735/claynest-web-craft/internal/cart"
	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func validForm() Form {
	return Form{
		CustomerName:    "Asha Rao",
		CustomerEmail:   "asha@example.com",
		CompanyName:     "Rao Cafes",
		ShippingAddress: "12 Market Road, Pune",
	}
}

// twoLineCart holds (A, 100 x 10) and (B, 250 x 4).
func twoLineCart() *cart.Store {
	s := cart.NewStore()
	s.Add(domain.Product{ID: "A", Name: "Tea cup", Price: decimal.NewFromInt(100), MinOrderQuantity: 10}, 10)
	s.Add(domain.Product{ID: "B", Name: "Dinner plate", Price: decimal.NewFromInt(250), MinOrderQuantity: 4}, 4)
	return s
}

func TestPlaceOrder_Success(t *testing.T) {
	backend := &MockOrderBackend{}
	events := &MockEventRecorder{}
	svc := NewService(backend, events, zap.NewNop())
	c := twoLineCart()

	order, err := svc.PlaceOrder(context.Background(), c, validForm())
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, MsgOrderPlaced, Message(err))

	require.Len(t, backend.CreatedOrders, 1)
	assert.True(t, decimal.NewFromInt(2000).Equal(backend.CreatedOrders[0].TotalAmount))

	require.Len(t, backend.CreatedItems, 2)
	for _, it := range backend.CreatedItems {
		assert.Equal(t, "order-1", it.OrderID)
		assert.True(t, decimal.NewFromInt(1000).Equal(it.TotalPrice))
	}
	assert.Equal(t, "A", backend.CreatedItems[0].ProductID)
	assert.Equal(t, 10, backend.CreatedItems[0].Quantity)
	assert.True(t, decimal.NewFromInt(100).Equal(backend.CreatedItems[0].UnitPrice))
	assert.Equal(t, "B", backend.CreatedItems[1].ProductID)
	assert.Equal(t, 4, backend.CreatedItems[1].Quantity)

	assert.Equal(t, []string{"CreateOrder", "CreateOrderItems"}, backend.Calls)
	assert.Zero(t, c.Len())
	assert.Zero(t, c.TotalItems())
}

func TestPlaceOrder_RecordsPlacedEvent(t *testing.T) {
	events := &MockEventRecorder{}
	svc := NewService(&MockOrderBackend{}, events, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), twoLineCart(), validForm())
	require.NoError(t, err)

	require.Len(t, events.Events, 1)
	ev := events.Events[0]
	assert.Equal(t, "order-1", ev.AggregateID)
	assert.Equal(t, EventOrderPlaced, ev.EventType)

	var payload placedEvent
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "asha@example.com", payload.CustomerEmail)
	assert.Len(t, payload.Items, 2)
	assert.Equal(t, "Tea cup", payload.Items[0].ProductName)
	assert.True(t, decimal.NewFromInt(2000).Equal(payload.TotalAmount))
}

func TestPlaceOrder_EventFailureDoesNotFailOrder(t *testing.T) {
	events := &MockEventRecorder{Err: errors.New("outbox unavailable")}
	svc := NewService(&MockOrderBackend{}, events, zap.NewNop())
	c := twoLineCart()

	order, err := svc.PlaceOrder(context.Background(), c, validForm())
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Zero(t, c.Len())
}

func TestPlaceOrder_NilEventRecorder(t *testing.T) {
	svc := NewService(&MockOrderBackend{}, nil, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), twoLineCart(), validForm())
	assert.NoError(t, err)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	backend := &MockOrderBackend{}
	svc := NewService(backend, &MockEventRecorder{}, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), cart.NewStore(), validForm())

	assert.ErrorIs(t, err, ErrEmptyCart)
	var vErr *validation.Error
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, MsgEmptyCart, Message(err))
	assert.Empty(t, backend.Calls)
}

func TestPlaceOrder_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		form  Form
		field string
	}{
		{"missing name", Form{CustomerEmail: "a@b.co", ShippingAddress: "x"}, "customer_name"},
		{"blank name", Form{CustomerName: "   ", CustomerEmail: "a@b.co", ShippingAddress: "x"}, "customer_name"},
		{"missing email", Form{CustomerName: "A", ShippingAddress: "x"}, "customer_email"},
		{"invalid email", Form{CustomerName: "A", CustomerEmail: "not-an-email", ShippingAddress: "x"}, "customer_email"},
		{"missing address", Form{CustomerName: "A", CustomerEmail: "a@b.co"}, "shipping_address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &MockOrderBackend{}
			svc := NewService(backend, nil, zap.NewNop())
			c := twoLineCart()

			_, err := svc.PlaceOrder(context.Background(), c, tt.form)

			var vErr *validation.Error
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, vErr.Fields, tt.field)
			assert.Equal(t, MsgMissingFields, Message(err))
			assert.Empty(t, backend.Calls)
			assert.Equal(t, 2, c.Len())
		})
	}
}

func TestPlaceOrder_TrimsFields(t *testing.T) {
	backend := &MockOrderBackend{}
	svc := NewService(backend, nil, zap.NewNop())
	form := validForm()
	form.CustomerEmail = "  asha@example.com "
	form.Notes = "  leave at gate  "

	_, err := svc.PlaceOrder(context.Background(), twoLineCart(), form)
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", backend.CreatedOrders[0].CustomerEmail)
	assert.Equal(t, "leave at gate", backend.CreatedOrders[0].Notes)
}

func TestPlaceOrder_OrderCreationFails(t *testing.T) {
	backend := &MockOrderBackend{CreateOrderErr: errors.New("connection refused")}
	events := &MockEventRecorder{}
	svc := NewService(backend, events, zap.NewNop())
	c := twoLineCart()

	order, err := svc.PlaceOrder(context.Background(), c, validForm())

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrOrderCreation)
	assert.Equal(t, MsgOrderFailed, Message(err))
	assert.Equal(t, []string{"CreateOrder"}, backend.Calls)
	assert.Empty(t, backend.CreatedItems)
	assert.Empty(t, events.Events)
	assert.Equal(t, 2, c.Len())
	assert.True(t, decimal.NewFromInt(2000).Equal(c.TotalAmount()))
}

func TestPlaceOrder_ItemCreationFailsDeletesOrder(t *testing.T) {
	backend := &MockOrderBackend{CreateItemsErr: errors.New("timeout")}
	events := &MockEventRecorder{}
	svc := NewService(backend, events, zap.NewNop())
	c := twoLineCart()

	order, err := svc.PlaceOrder(context.Background(), c, validForm())

	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrItemCreation)
	assert.NotErrorIs(t, err, ErrOrphanedOrder)
	assert.Equal(t, MsgOrderFailed, Message(err))
	assert.Equal(t, []string{"CreateOrder", "CreateOrderItems", "DeleteOrder"}, backend.Calls)
	assert.Equal(t, []string{"order-1"}, backend.DeletedIDs)
	assert.Empty(t, events.Events)
	assert.Equal(t, 2, c.Len())
}

func TestPlaceOrder_DeleteAfterItemFailureFails(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	backend := &MockOrderBackend{
		CreateItemsErr: errors.New("timeout"),
		DeleteErr:      errors.New("still down"),
	}
	svc := NewService(backend, nil, zap.New(core))
	c := twoLineCart()

	_, err := svc.PlaceOrder(context.Background(), c, validForm())

	assert.ErrorIs(t, err, ErrItemCreation)
	assert.ErrorIs(t, err, ErrOrphanedOrder)
	assert.Equal(t, 2, c.Len())

	orphanLogs := logs.FilterMessage("failed to delete order without items").All()
	require.Len(t, orphanLogs, 1)
	assert.Equal(t, "order-1", orphanLogs[0].ContextMap()["order_id"])
}

func TestPlaceOrder_ResubmissionCreatesNewOrder(t *testing.T) {
	backend := &MockOrderBackend{CreateItemsErr: errors.New("timeout")}
	svc := NewService(backend, nil, zap.NewNop())
	c := twoLineCart()

	_, err := svc.PlaceOrder(context.Background(), c, validForm())
	require.Error(t, err)

	backend.CreateItemsErr = nil
	_, err = svc.PlaceOrder(context.Background(), c, validForm())
	require.NoError(t, err)

	assert.Len(t, backend.CreatedOrders, 2)
	assert.Len(t, backend.CreatedItems, 2)
}

func TestPlaceOrder_KeepsLinesChangedDuringCheckout(t *testing.T) {
	c := twoLineCart()
	extra := domain.Product{ID: "C", Name: "Soup bowl", Price: decimal.NewFromInt(80), MinOrderQuantity: 2}
	backend := &MockOrderBackend{
		OnCreateItems: func() {
			c.Add(extra, 2)
			c.UpdateQuantity("B", 8)
		},
	}
	svc := NewService(backend, nil, zap.NewNop())

	_, err := svc.PlaceOrder(context.Background(), c, validForm())
	require.NoError(t, err)
	require.Len(t, backend.CreatedItems, 2)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "B", lines[0].Product.ID)
	assert.Equal(t, 8, lines[0].Quantity)
	assert.Equal(t, "C", lines[1].Product.ID)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestPlaceOrder_WritesSurviveRequestCancellation(t *testing.T) {
	backend := &MockOrderBackend{}
	svc := NewService(backend, nil, zap.NewNop())
	c := twoLineCart()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	order, err := svc.PlaceOrder(ctx, c, validForm())
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Len(t, backend.CreatedItems, 2)
	assert.Zero(t, c.Len())
}
