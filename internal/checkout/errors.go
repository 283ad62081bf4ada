package checkout

import (
	"errors"

	"github.com/ayush2735/claynest-web-craft/internal/validation"
)

const (
	MsgEmptyCart     = "Your cart is empty"
	MsgMissingFields = "Please fill in all required fields"
	MsgOrderPlaced   = "Order placed successfully!"
	MsgOrderFailed   = "Failed to place order. Please try again."
)

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to checkout")
	ErrOrderCreation = errors.New("failed to create order")
	ErrItemCreation  = errors.New("failed to create order items")
	ErrOrphanedOrder = errors.New("order persisted without items")
)

// Message returns the text shown to the customer for the outcome of PlaceOrder.
func Message(err error) string {
	if err == nil {
		return MsgOrderPlaced
	}
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return MsgOrderFailed
}
