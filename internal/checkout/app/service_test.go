package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cart "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

func newCartStore(t *testing.T, products ...catalog.Product) *cartapp.Store {
	t.Helper()
	s, err := cartapp.NewStore(context.Background(), memory.NewSlotStore())
	require.NoError(t, err)
	for _, p := range products {
		s.AddToCart(context.Background(), p)
	}
	return s
}

var (
	tea   = catalog.Product{ID: "tea", Title: "Green Tea", Price: 5, DiscountedPrice: 4.99}
	mugs  = catalog.Product{ID: "mug", Title: "Mug", Price: 12, DiscountedPrice: 12}
	fixed = time.Date(2026, 10, 19, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
)

func TestBuildQuote(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		_, err := BuildQuote(cart.Cart{})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("prices lines at discounted price", func(t *testing.T) {
		c := cart.Cart{}.Add(tea).Add(tea).Add(tea).Add(mugs)

		q, err := BuildQuote(c)
		require.NoError(t, err)
		require.Len(t, q.Lines, 2)

		assert.Equal(t, "tea", q.Lines[0].ProductID)
		assert.Equal(t, 3, q.Lines[0].Quantity)
		assert.Equal(t, "14.97", q.Lines[0].LineTotal.StringFixed(2))
		assert.Equal(t, "12.00", q.Lines[1].LineTotal.StringFixed(2))
		assert.Equal(t, 4, q.TotalItems)
		assert.True(t, decimal.RequireFromString("26.97").Equal(q.Total))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := BuildQuote(cart.Cart{{Product: tea, Quantity: 0}})
		assert.Error(t, err)
	})
}

func TestQuoteDoesNotMutateCart(t *testing.T) {
	store := newCartStore(t, tea)
	svc := NewService(store)

	_, err := svc.Quote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.TotalItems())
}

func TestPlaceOrder(t *testing.T) {
	store := newCartStore(t, tea, mugs, tea)
	svc := NewService(store, WithClock(func() time.Time { return fixed }))

	receipt, err := svc.PlaceOrder(context.Background())
	require.NoError(t, err)

	_, parseErr := uuid.Parse(receipt.OrderID)
	assert.NoError(t, parseErr)
	assert.Equal(t, SuccessMessage, receipt.Message)
	assert.Equal(t, fixed.UTC(), receipt.PlacedAt)
	assert.Equal(t, 3, receipt.Quote.TotalItems)
	assert.Equal(t, "21.98", receipt.Quote.Total.StringFixed(2))

	assert.Empty(t, store.Cart(), "checkout clears the cart")

	_, err = svc.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_ConcurrentAddsAreBilledOrKept(t *testing.T) {
	ctx := context.Background()
	store := newCartStore(t)
	svc := NewService(store)

	const adds = 300
	var (
		billed atomic.Int64
		g      errgroup.Group
	)
	for i := 0; i < adds; i++ {
		g.Go(func() error {
			store.AddToCart(ctx, tea)
			return nil
		})
		if i%25 == 0 {
			g.Go(func() error {
				receipt, err := svc.PlaceOrder(ctx)
				if errors.Is(err, ErrEmptyCart) {
					return nil
				}
				if err != nil {
					return err
				}
				billed.Add(int64(receipt.Quote.TotalItems))
				return nil
			})
		}
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(adds), billed.Load()+int64(store.TotalItems()))
}
