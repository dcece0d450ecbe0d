package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places prices are rendered with.
const MoneyPlaces = 2

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Review struct {
	ID          string `json:"id,omitempty"`
	Username    string `json:"username"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// Product is a read-only catalog item as served by the product API.
type Product struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	DiscountedPrice float64  `json:"discountedPrice"`
	Image           Image    `json:"image"`
	Reviews         []Review `json:"reviews"`
	Tags            []string `json:"tags,omitempty"`
}

func (p Product) HasDiscount() bool {
	return p.Price > p.DiscountedPrice
}

// DiscountPercent is the whole-number percentage off the list price, or zero
// when the product is not discounted.
func (p Product) DiscountPercent() decimal.Decimal {
	if !p.HasDiscount() || p.Price <= 0 {
		return decimal.Zero
	}

	price := decimal.NewFromFloat(p.Price)
	off := price.Sub(decimal.NewFromFloat(p.DiscountedPrice))

	return off.Div(price).Mul(decimal.NewFromInt(100)).Round(0)
}

// AltText falls back to the title when the image carries no alt text.
func (p Product) AltText() string {
	if p.Image.Alt != "" {
		return p.Image.Alt
	}
	return p.Title
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Reviews = slices.Clone(p.Reviews)
	p.Tags = slices.Clone(p.Tags)
	return p
}
