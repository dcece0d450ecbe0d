package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// CartReader is the part of the cart store checkout needs.
type CartReader interface {
	Cart() domain.Cart

	// Checkout passes the cart to fn and clears it if fn succeeds, with no
	// other mutation in between.
	Checkout(ctx context.Context, fn func(domain.Cart) error) error
}
