package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

func product(id string, discounted float64) catalog.Product {
	return catalog.Product{ID: id, Title: "product " + id, Price: discounted, DiscountedPrice: discounted}
}

func TestCartAdd(t *testing.T) {
	t.Run("new product gets its own line with quantity 1", func(t *testing.T) {
		c := Cart{}.Add(product("1", 10))
		assert.Equal(t, Cart{{Product: product("1", 10), Quantity: 1}}, c)
	})

	t.Run("existing product bumps quantity without a new line", func(t *testing.T) {
		c := Cart{{Product: product("1", 10), Quantity: 2}, {Product: product("2", 5), Quantity: 1}}
		got := c.Add(product("1", 10))

		assert.Len(t, got, 2)
		assert.Equal(t, 3, got[0].Quantity)
		assert.Equal(t, 2, c[0].Quantity, "receiver must not be modified")
	})

	t.Run("repeat add keeps the first snapshot", func(t *testing.T) {
		first := product("1", 10)
		repriced := first
		repriced.DiscountedPrice = 99
		repriced.Title = "renamed"

		got := Cart{}.Add(first).Add(repriced)
		assert.Equal(t, 2, got[0].Quantity)
		assert.Equal(t, 10.0, got[0].DiscountedPrice)
		assert.Equal(t, "product 1", got[0].Title)
	})
}

func TestCartRemove(t *testing.T) {
	c := Cart{
		{Product: product("1", 1), Quantity: 2},
		{Product: product("2", 1), Quantity: 1},
		{Product: product("3", 1), Quantity: 4},
	}

	t.Run("removes only the matching line and keeps order", func(t *testing.T) {
		got := c.Remove("2")
		assert.Equal(t, Cart{c[0], c[2]}, got)
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		assert.Equal(t, c, c.Remove("404"))
	})
}

func TestCartTotals(t *testing.T) {
	c := Cart{}.Add(product("1", 10)).Add(product("1", 10)).Add(product("2", 0.1)).Add(product("2", 0.1)).Add(product("2", 0.1))

	assert.Equal(t, 5, c.TotalItems())
	assert.True(t, decimal.RequireFromString("20.3").Equal(c.Subtotal()), c.Subtotal().String())
	assert.True(t, Cart{}.Subtotal().IsZero())
}

func TestCartFind(t *testing.T) {
	c := Cart{}.Add(product("1", 10))

	line, ok := c.Find("1")
	assert.True(t, ok)
	assert.Equal(t, 1, line.Quantity)

	_, ok = c.Find("2")
	assert.False(t, ok)
}

func TestCartClone(t *testing.T) {
	p := product("1", 10)
	p.Reviews = []catalog.Review{{Username: "Jo", Rating: 4}}
	p.Tags = []string{"gift"}

	c := Cart{}.Add(p)
	p.Reviews[0].Username = "changed by caller"
	assert.Equal(t, "Jo", c[0].Reviews[0].Username, "Add keeps its own copy")

	clone := c.Clone()
	clone[0].Reviews[0].Username = "changed by reader"
	clone[0].Tags[0] = "changed"
	clone[0].Quantity = 9

	assert.Equal(t, "Jo", c[0].Reviews[0].Username)
	assert.Equal(t, "gift", c[0].Tags[0])
	assert.Equal(t, 1, c[0].Quantity)

	assert.Nil(t, Cart(nil).Clone())
}

func TestCartSanitize(t *testing.T) {
	c := Cart{
		{Product: product("1", 1), Quantity: 1},
		{Product: product("", 1), Quantity: 1},
		{Product: product("2", 1), Quantity: 0},
		{Product: product("1", 1), Quantity: 5},
		{Product: product("3", 1), Quantity: 2},
	}

	assert.Equal(t, Cart{c[0], c[4]}, c.Sanitize())
}
