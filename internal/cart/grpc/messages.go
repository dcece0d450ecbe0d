package grpc

import (
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type GetCartRequest struct{}

type AddItemRequest struct {
	Product catalog.Product `json:"product"`
}

type RemoveItemRequest struct {
	ProductID string `json:"productId"`
}

type ClearCartRequest struct{}

type Cart struct {
	Lines      []domain.Line `json:"lines"`
	TotalItems int           `json:"totalItems"`
	Subtotal   string        `json:"subtotal"`
}
