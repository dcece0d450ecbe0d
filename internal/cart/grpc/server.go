package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	_ "github.com/dwikikusuma/storefront/pkg/grpcjson" // registers the json codec
)

type Server struct {
	UnimplementedCartServiceServer
	store *app.Store
}

func NewServer(store *app.Store) *Server {
	return &Server{store: store}
}

func (s *Server) GetCart(ctx context.Context, req *GetCartRequest) (*Cart, error) {
	return toMessage(s.store.Cart()), nil
}

func (s *Server) AddItem(ctx context.Context, req *AddItemRequest) (*Cart, error) {
	if req == nil || strings.TrimSpace(req.Product.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "product.id is required")
	}

	s.store.AddToCart(ctx, req.Product)
	return toMessage(s.store.Cart()), nil
}

func (s *Server) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*Cart, error) {
	if req == nil || strings.TrimSpace(req.ProductID) == "" {
		return nil, status.Error(codes.InvalidArgument, "productId is required")
	}

	s.store.RemoveFromCart(ctx, req.ProductID)
	return toMessage(s.store.Cart()), nil
}

func (s *Server) ClearCart(ctx context.Context, req *ClearCartRequest) (*Cart, error) {
	s.store.ClearCart(ctx)
	return toMessage(s.store.Cart()), nil
}

func toMessage(cart domain.Cart) *Cart {
	lines := make([]domain.Line, 0, len(cart))
	lines = append(lines, cart...)

	return &Cart{
		Lines:      lines,
		TotalItems: cart.TotalItems(),
		Subtotal:   cart.Subtotal().StringFixed(catalog.MoneyPlaces),
	}
}
