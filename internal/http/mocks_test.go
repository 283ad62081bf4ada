package http

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/ayush2735/claynest-web-craft/internal/analytics"
	"github.com/ayush2735/claynest-web-craft/internal/catalog"
	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/inquiry"
	"github.com/ayush2735/claynest-web-craft/internal/orders"
	"github.com/ayush2735/claynest-web-craft/internal/repository"
	"github.com/ayush2735/claynest-web-craft/internal/storage"
	"github.com/google/uuid"
)

type MockCatalog struct {
	products []*domain.Product
	err      error
	created  []catalog.ProductInput
	deleted  []string
}

func (m *MockCatalog) List(ctx context.Context, category string) ([]*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if category == "" || category == "all" {
		return m.products, nil
	}
	var out []*domain.Product
	for _, p := range m.products {
		if string(p.Category) == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockCatalog) Featured(ctx context.Context) ([]*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Product
	for _, p := range m.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockCatalog) Get(ctx context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *MockCatalog) Create(ctx context.Context, in catalog.ProductInput) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, in)
	return &domain.Product{ID: uuid.NewString(), Name: in.Name, Category: in.Category, Price: in.Price}, nil
}

func (m *MockCatalog) Update(ctx context.Context, id string, in catalog.ProductInput) (*domain.Product, error) {
	p, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	return p, nil
}

func (m *MockCatalog) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type MockOrderBackend struct {
	mu       sync.Mutex
	orders   []*domain.Order
	items    []domain.OrderItem
	orderErr error
	itemsErr error
}

func (m *MockOrderBackend) CreateOrder(ctx context.Context, in domain.NewOrder) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	o := &domain.Order{
		ID:            uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		TotalAmount:   in.TotalAmount,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
	}
	m.orders = append(m.orders, o)
	return o, nil
}

func (m *MockOrderBackend) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.itemsErr != nil {
		return m.itemsErr
	}
	m.items = append(m.items, items...)
	return nil
}

func (m *MockOrderBackend) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.orders {
		if o.ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

type MockInquiries struct {
	submitted []inquiry.Form
	statuses  map[string]string
	err       error
}

func (m *MockInquiries) Submit(ctx context.Context, f inquiry.Form) (*domain.Inquiry, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.submitted = append(m.submitted, f)
	return &domain.Inquiry{ID: uuid.NewString(), Name: f.Name, Email: f.Email, Message: f.Message}, nil
}

func (m *MockInquiries) List(ctx context.Context, status string) ([]*domain.Inquiry, error) {
	return []*domain.Inquiry{{ID: "inq-1", Status: domain.InquiryStatus(status)}}, m.err
}

func (m *MockInquiries) UpdateStatus(ctx context.Context, id, status string) error {
	if m.err != nil {
		return m.err
	}
	if m.statuses == nil {
		m.statuses = map[string]string{}
	}
	m.statuses[id] = status
	return nil
}

type MockOrders struct {
	detail   *orders.Detail
	statuses map[string]string
	err      error
}

func (m *MockOrders) List(ctx context.Context) ([]*domain.Order, error) {
	if m.detail == nil {
		return []*domain.Order{}, m.err
	}
	return []*domain.Order{m.detail.Order}, m.err
}

func (m *MockOrders) Get(ctx context.Context, id string) (*orders.Detail, error) {
	if m.detail == nil || m.detail.ID != id {
		return nil, repository.ErrOrderNotFound
	}
	return m.detail, nil
}

func (m *MockOrders) UpdateStatus(ctx context.Context, id, status string) error {
	return m.set(id, "status="+status)
}

func (m *MockOrders) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	return m.set(id, "payment_status="+status)
}

func (m *MockOrders) set(id, v string) error {
	if m.err != nil {
		return m.err
	}
	if m.statuses == nil {
		m.statuses = map[string]string{}
	}
	m.statuses[id] = v
	return nil
}

type MockDashboard struct {
	summary analytics.Summary
	err     error
}

func (m *MockDashboard) Summary(ctx context.Context) (analytics.Summary, error) {
	return m.summary, m.err
}

type MockTracker struct {
	visitors map[string]bool
	err      error
}

func (m *MockTracker) Heartbeat(ctx context.Context, visitorID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if visitorID == "" {
		visitorID = "visitor_generated"
	}
	if m.visitors == nil {
		m.visitors = map[string]bool{}
	}
	m.visitors[visitorID] = true
	return visitorID, nil
}

func (m *MockTracker) Count(ctx context.Context) (int64, error) {
	return int64(len(m.visitors)), m.err
}

func (m *MockTracker) Leave(ctx context.Context, visitorID string) error {
	delete(m.visitors, visitorID)
	return m.err
}

type MockImages struct {
	files map[string][]byte
}

func (m *MockImages) Upload(ctx context.Context, originalName string, r io.Reader) (string, error) {
	_, contentType, err := storage.GenerateName(originalName, fixedTime)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	name := "1700000000000-abc." + contentType[len("image/"):]
	m.files[name] = data
	return name, nil
}

func (m *MockImages) Open(ctx context.Context, name string) (*storage.Image, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, storage.ErrImageNotFound
	}
	return &storage.Image{
		ReadCloser:  io.NopCloser(bytes.NewReader(data)),
		Name:        name,
		ContentType: "image/png",
		Size:        int64(len(data)),
	}, nil
}
