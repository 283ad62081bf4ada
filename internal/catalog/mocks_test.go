package catalog

import (
	"context"
	"fmt"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/repository"
)

// MockProductStore keeps products in insertion order.
type MockProductStore struct {
	Products     []*domain.Product
	ListErr      error
	LastCategory string
	LastLimit    int
	nextID       int
}

func (m *MockProductStore) ListProducts(_ context.Context, category string) ([]*domain.Product, error) {
	m.LastCategory = category
	return m.Products, m.ListErr
}

func (m *MockProductStore) FeaturedProducts(_ context.Context, limit int) ([]*domain.Product, error) {
	m.LastLimit = limit
	return m.Products, m.ListErr
}

func (m *MockProductStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range m.Products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *MockProductStore) CreateProduct(_ context.Context, p *domain.Product) error {
	m.nextID++
	p.ID = fmt.Sprintf("p%d", m.nextID)
	m.Products = append(m.Products, p)
	return nil
}

func (m *MockProductStore) UpdateProduct(_ context.Context, p *domain.Product) error {
	for i := range m.Products {
		if m.Products[i].ID == p.ID {
			m.Products[i] = p
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (m *MockProductStore) DeleteProduct(_ context.Context, id string) error {
	for i := range m.Products {
		if m.Products[i].ID == id {
			m.Products = append(m.Products[:i], m.Products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}
