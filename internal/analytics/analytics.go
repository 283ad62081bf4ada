package analytics

import (
	"context"
	"fmt"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	LowStockThreshold = 100
	RecentOrdersLimit = 5
)

type Summary struct {
	OnlineVisitors   int64                   `json:"online_visitors"`
	TotalOrders      int                     `json:"total_orders"`
	PendingOrders    int                     `json:"pending_orders"`
	TotalRevenue     decimal.Decimal         `json:"total_revenue"`
	TotalProducts    int                     `json:"total_products"`
	LowStockProducts int                     `json:"low_stock_products"`
	ByCategory       map[domain.Category]int `json:"by_category"`
	RecentOrders     []*domain.Order         `json:"recent_orders"`
}

// Compute derives the dashboard figures. orders must be sorted newest first.
func Compute(orders []*domain.Order, products []*domain.Product) Summary {
	s := Summary{
		TotalOrders:   len(orders),
		TotalRevenue:  decimal.Zero,
		TotalProducts: len(products),
		ByCategory:    make(map[domain.Category]int),
	}
	for _, o := range orders {
		s.TotalRevenue = s.TotalRevenue.Add(o.TotalAmount)
		if o.Status == domain.OrderStatusPending {
			s.PendingOrders++
		}
	}
	for _, p := range products {
		if p.StockQuantity < LowStockThreshold {
			s.LowStockProducts++
		}
		s.ByCategory[p.Category]++
	}

	recent := orders
	if len(recent) > RecentOrdersLimit {
		recent = recent[:RecentOrdersLimit]
	}
	s.RecentOrders = append([]*domain.Order{}, recent...)
	return s
}

type OrderLister interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}

type ProductLister interface {
	ListProducts(ctx context.Context, category string) ([]*domain.Product, error)
}

type VisitorCounter interface {
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	orders   OrderLister
	products ProductLister
	visitors VisitorCounter
}

func NewService(orders OrderLister, products ProductLister, visitors VisitorCounter) *Service {
	return &Service{orders: orders, products: products, visitors: visitors}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list orders: %w", err)
	}
	products, err := s.products.ListProducts(ctx, "")
	if err != nil {
		return Summary{}, fmt.Errorf("list products: %w", err)
	}

	summary := Compute(orders, products)
	if s.visitors != nil {
		online, err := s.visitors.Count(ctx)
		if err != nil {
			return Summary{}, fmt.Errorf("count visitors: %w", err)
		}
		summary.OnlineVisitors = online
	}
	return summary, nil
}
