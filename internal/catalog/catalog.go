package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/ayush2735/claynest-web-craft/internal/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	FeaturedLimit = 6

	MsgProductAdded   = "Product added"
	MsgProductUpdated = "Product updated"
	MsgProductDeleted = "Product deleted"
	MsgInvalidProduct = "Please check the product details"
)

var ErrUnknownCategory = errors.New("unknown category")

type ProductStore interface {
	ListProducts(ctx context.Context, category string) ([]*domain.Product, error)
	FeaturedProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// ProductInput is the admin form for creating or editing a product.
type ProductInput struct {
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description"`
	Category         domain.Category `json:"category" validate:"required,oneof=cups plates pots bowls vases other"`
	Price            decimal.Decimal `json:"price"`
	MinOrderQuantity int             `json:"min_order_quantity" validate:"min=1"`
	StockQuantity    int             `json:"stock_quantity" validate:"min=0"`
	ImageURL         string          `json:"image_url"`
	IsFeatured       bool            `json:"is_featured"`
}

func (in ProductInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	err := validation.Struct(in, MsgInvalidProduct)
	if in.Price.IsNegative() {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			vErr = &validation.Error{Message: MsgInvalidProduct, Fields: map[string]string{}}
		}
		vErr.Fields["price"] = "value is less than 0"
		return vErr
	}
	return err
}

func (in ProductInput) apply(p *domain.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.Category = in.Category
	p.Price = in.Price
	p.MinOrderQuantity = in.MinOrderQuantity
	p.StockQuantity = in.StockQuantity
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.IsFeatured = in.IsFeatured
}

type Service struct {
	store  ProductStore
	logger *zap.Logger
}

func NewService(store ProductStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns products newest first. "" and "all" list every category.
func (s *Service) List(ctx context.Context, category string) ([]*domain.Product, error) {
	if category != "" && category != "all" && !domain.Category(category).Valid() {
		return nil, validation.New(fmt.Sprintf("Unknown category %q", category), ErrUnknownCategory)
	}
	products, err := s.store.ListProducts(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Service) Featured(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.store.FeaturedProducts(ctx, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("featured products: %w", err)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.store.GetProduct(ctx, id)
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &domain.Product{}
	in.apply(p)
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product updated", zap.String("product_id", p.ID))
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// Search keeps the products whose name or category contains term, ignoring case.
// An empty term keeps everything.
func Search(products []*domain.Product, term string) []*domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(string(p.Category)), term) {
			out = append(out, p)
		}
	}
	return out
}
