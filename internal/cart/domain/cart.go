package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// Line is a snapshot of a product taken when it was first added, plus how
// many of it are in the cart. Quantity is always at least 1.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Cart is an ordered list of lines with unique product ids. Mutations return
// a new slice and never modify the receiver's backing array.
type Cart []Line

// Add bumps the quantity of the line for p, or appends a new line with
// quantity 1. An existing line keeps the product fields it was added with.
func (c Cart) Add(p catalog.Product) Cart {
	out := make(Cart, len(c), len(c)+1)
	copy(out, c)

	for i := range out {
		if out[i].ID == p.ID {
			out[i].Quantity++
			return out
		}
	}

	return append(out, Line{Product: p.Clone(), Quantity: 1})
}

// Clone deep-copies the cart so the result shares no memory with c.
func (c Cart) Clone() Cart {
	if c == nil {
		return nil
	}
	out := make(Cart, len(c))
	for i, line := range c {
		out[i] = Line{Product: line.Product.Clone(), Quantity: line.Quantity}
	}
	return out
}

// Remove drops the line for productID. Unknown ids leave the cart unchanged.
func (c Cart) Remove(productID string) Cart {
	out := make(Cart, 0, len(c))
	for _, line := range c {
		if line.ID != productID {
			out = append(out, line)
		}
	}
	return out
}

func (c Cart) Find(productID string) (Line, bool) {
	for _, line := range c {
		if line.ID == productID {
			return line, true
		}
	}
	return Line{}, false
}

func (c Cart) TotalItems() int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

func (l Line) Total() decimal.Decimal {
	return decimal.NewFromFloat(l.DiscountedPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Subtotal is the sum of quantity * discountedPrice over all lines.
func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range c {
		sum = sum.Add(line.Total())
	}
	return sum
}

// Sanitize drops lines that break the cart invariants: empty ids, quantities
// below 1 and repeated ids (first occurrence wins).
func (c Cart) Sanitize() Cart {
	seen := make(map[string]struct{}, len(c))
	out := make(Cart, 0, len(c))
	for _, line := range c {
		if line.ID == "" || line.Quantity < 1 {
			continue
		}
		if _, dup := seen[line.ID]; dup {
			continue
		}
		seen[line.ID] = struct{}{}
		out = append(out, line)
	}
	return out
}
