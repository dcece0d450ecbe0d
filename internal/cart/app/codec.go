package app

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode renders the cart in its persisted form, a JSON array of lines.
func Encode(cart domain.Cart) (string, error) {
	if cart == nil {
		cart = domain.Cart{}
	}
	b, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a persisted cart. Blank input decodes to an empty cart.
func Decode(raw string) (domain.Cart, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.Cart{}, nil
	}

	var cart domain.Cart
	if err := json.UnmarshalFromString(raw, &cart); err != nil {
		return domain.Cart{}, err
	}
	if cart == nil {
		return domain.Cart{}, nil
	}
	return cart.Sanitize(), nil
}
