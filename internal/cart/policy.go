package cart

import (
	"fmt"

	"github.com/ayush2735/claynest-web-craft/internal/domain"
)

type MinimumQuantityError struct {
	Minimum int
}

func (e *MinimumQuantityError) Error() string {
	return fmt.Sprintf("Minimum order quantity is %d units", e.Minimum)
}

// ClampQuantity raises q to the product's minimum order quantity.
func ClampQuantity(p domain.Product, q int) int {
	return max(q, p.MinQuantity())
}

// ResolveAddQuantity picks the quantity for an add-to-cart action. Zero means
// "not chosen" and defaults to the minimum; anything else below the minimum is rejected.
func ResolveAddQuantity(p domain.Product, q int) (int, error) {
	if q == 0 {
		return p.MinQuantity(), nil
	}
	if q < p.MinQuantity() {
		return 0, &MinimumQuantityError{Minimum: p.MinQuantity()}
	}
	return q, nil
}
