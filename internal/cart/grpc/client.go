package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dwikikusuma/storefront/pkg/grpcjson"
)

// Client calls a remote CartService over the json codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetCart(ctx context.Context, opts ...grpc.CallOption) (*Cart, error) {
	return c.invoke(ctx, methodGetCart, &GetCartRequest{}, opts)
}

func (c *Client) AddItem(ctx context.Context, req *AddItemRequest, opts ...grpc.CallOption) (*Cart, error) {
	return c.invoke(ctx, methodAddItem, req, opts)
}

func (c *Client) RemoveItem(ctx context.Context, req *RemoveItemRequest, opts ...grpc.CallOption) (*Cart, error) {
	return c.invoke(ctx, methodRemoveItem, req, opts)
}

func (c *Client) ClearCart(ctx context.Context, opts ...grpc.CallOption) (*Cart, error) {
	return c.invoke(ctx, methodClearCart, &ClearCartRequest{}, opts)
}

func (c *Client) invoke(ctx context.Context, method string, req any, opts []grpc.CallOption) (*Cart, error) {
	out := new(Cart)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(grpcjson.Name)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
