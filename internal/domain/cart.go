package domain

import "github.com/shopspring/decimal"

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshot is the serialisable view of a session cart.
type CartSnapshot struct {
	SessionID   string          `json:"session_id"`
	Lines       []CartLine      `json:"lines"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
