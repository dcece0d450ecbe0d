package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	cart "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	checkout "github.com/dwikikusuma/storefront/internal/checkout/domain"
	contactapp "github.com/dwikikusuma/storefront/internal/contact/app"
	contact "github.com/dwikikusuma/storefront/internal/contact/domain"
)

type productResponse struct {
	catalog.Product
	AltText         string `json:"altText"`
	HasDiscount     bool   `json:"hasDiscount"`
	DiscountPercent string `json:"discountPercent,omitempty"`
}

type cartResponse struct {
	Lines      []cart.Line `json:"lines"`
	TotalItems int         `json:"totalItems"`
	Subtotal   string      `json:"subtotal"`
}

// addItemRequest carries either a full product snapshot, as a product page
// would send it, or ids to be resolved through the catalog.
type addItemRequest struct {
	ProductID  string           `json:"productId"`
	ProductIDs []string         `json:"productIds"`
	Product    *catalog.Product `json:"product"`
}

type quoteLineResponse struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type quoteResponse struct {
	Lines      []quoteLineResponse `json:"lines"`
	TotalItems int                 `json:"totalItems"`
	Total      string              `json:"total"`
}

type receiptResponse struct {
	OrderID  string        `json:"orderId"`
	Quote    quoteResponse `json:"quote"`
	PlacedAt time.Time     `json:"placedAt"`
	Message  string        `json:"message"`
}

type submissionResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *handler) listProducts(c *gin.Context) {
	products, err := h.Catalog.ListProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeErr(c, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *handler) getProduct(c *gin.Context) {
	p, err := h.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toProductResponse(p)})
}

func (h *handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(h.Cart.Cart()))
}

func (h *handler) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Code: "INVALID_ARGUMENT", Message: "invalid body: " + err.Error()})
		return
	}

	var products []catalog.Product
	switch {
	case req.Product != nil && strings.TrimSpace(req.Product.ID) != "":
		products = []catalog.Product{*req.Product}
	case strings.TrimSpace(req.ProductID) != "":
		p, err := h.Catalog.GetProduct(c.Request.Context(), req.ProductID)
		if err != nil {
			writeErr(c, err)
			return
		}
		products = []catalog.Product{p}
	case len(req.ProductIDs) > 0:
		// all ids resolve before anything is added
		ps, err := h.Catalog.GetMany(c.Request.Context(), req.ProductIDs)
		if err != nil {
			writeErr(c, err)
			return
		}
		products = ps
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Code: "INVALID_ARGUMENT", Message: "productId, productIds or product.id is required"})
		return
	}

	for _, p := range products {
		h.Cart.AddToCart(c.Request.Context(), p)
	}
	c.JSON(http.StatusOK, toCartResponse(h.Cart.Cart()))
}

func (h *handler) getCartItem(c *gin.Context) {
	line, ok := h.Cart.Cart().Find(c.Param("id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Message: "product is not in the cart"})
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h *handler) removeCartItem(c *gin.Context) {
	h.Cart.RemoveFromCart(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, toCartResponse(h.Cart.Cart()))
}

func (h *handler) clearCart(c *gin.Context) {
	h.Cart.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, toCartResponse(h.Cart.Cart()))
}

func (h *handler) quote(c *gin.Context) {
	q, err := h.Checkout.Quote(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(q))
}

func (h *handler) placeOrder(c *gin.Context) {
	r, err := h.Checkout.PlaceOrder(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, receiptResponse{
		OrderID:  r.OrderID,
		Quote:    toQuoteResponse(r.Quote),
		PlacedAt: r.PlacedAt,
		Message:  r.Message,
	})
}

func (h *handler) submitContact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Code: "INVALID_ARGUMENT", Message: "invalid body: " + err.Error()})
		return
	}

	sub, err := h.Contact.Submit(c.Request.Context(), msg)
	if err != nil {
		var fields contact.ValidationErrors
		if errors.Is(err, contactapp.ErrInvalidInput) && errors.As(err, &fields) {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
				Code:    "INVALID_ARGUMENT",
				Message: "contact form is invalid",
				Fields:  fields,
			})
			return
		}
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, submissionResponse{ID: sub.ID, Message: sub.Message})
}

func toProductResponse(p catalog.Product) productResponse {
	out := productResponse{Product: p, AltText: p.AltText(), HasDiscount: p.HasDiscount()}
	if out.HasDiscount {
		out.DiscountPercent = p.DiscountPercent().String()
	}
	return out
}

func toCartResponse(c cart.Cart) cartResponse {
	lines := make([]cart.Line, 0, len(c))
	lines = append(lines, c...)

	return cartResponse{
		Lines:      lines,
		TotalItems: c.TotalItems(),
		Subtotal:   c.Subtotal().StringFixed(checkout.MoneyPlaces),
	}
}

func toQuoteResponse(q checkout.Quote) quoteResponse {
	lines := make([]quoteLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, quoteLineResponse{
			ProductID: l.ProductID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(checkout.MoneyPlaces),
			LineTotal: l.LineTotal.StringFixed(checkout.MoneyPlaces),
		})
	}

	return quoteResponse{
		Lines:      lines,
		TotalItems: q.TotalItems,
		Total:      q.Total.StringFixed(checkout.MoneyPlaces),
	}
}
