package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	contactapp "github.com/dwikikusuma/storefront/internal/contact/app"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeSource struct {
	products []catalog.Product
	err      error
}

func (f *fakeSource) List(ctx context.Context) ([]catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeSource) Get(ctx context.Context, id string) (catalog.Product, error) {
	if f.err != nil {
		return catalog.Product{}, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalogapp.ErrNotFound
}

func newTestRouter(t *testing.T, src *fakeSource) (*gin.Engine, *cartapp.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := cartapp.NewStore(context.Background(), memory.NewSlotStore())
	require.NoError(t, err)

	r := NewRouter(Deps{
		Catalog:  catalogapp.NewService(src, 2),
		Cart:     store,
		Checkout: checkoutapp.NewService(store),
		Contact:  contactapp.NewService(nil),
	})
	return r, store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func products() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Title: "Vanilla Perfume", Price: 20, DiscountedPrice: 15},
		{ID: "p2", Title: "Wool Socks", Price: 4.5, DiscountedPrice: 4.5},
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, &fakeSource{})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/readyz", "").Code)
}

func TestListProducts_Search(t *testing.T) {
	r, _ := newTestRouter(t, &fakeSource{products: products()})

	w := do(r, http.MethodGet, "/api/products?q=PERF", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []productResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "p1", body.Data[0].ID)
	assert.True(t, body.Data[0].HasDiscount)
	assert.Equal(t, "25", body.Data[0].DiscountPercent)
	assert.Equal(t, "Vanilla Perfume", body.Data[0].AltText, "falls back to the title")
}

func TestListProducts_UpstreamDown(t *testing.T) {
	r, _ := newTestRouter(t, &fakeSource{err: catalogapp.ErrUnavailable})

	w := do(r, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"UNAVAILABLE"`)
}

func TestGetProduct_NotFound(t *testing.T) {
	r, _ := newTestRouter(t, &fakeSource{products: products()})

	w := do(r, http.MethodGet, "/api/products/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartFlow(t *testing.T) {
	r, store := newTestRouter(t, &fakeSource{products: products()})

	w := do(r, http.MethodPost, "/api/cart/items", `{"productId":"p1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/cart/items", `{"product":{"id":"p1","title":"Vanilla Perfume","price":20,"discountedPrice":15}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/cart/items", `{"productId":"p2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var cart cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, 3, cart.TotalItems)
	assert.Equal(t, "34.50", cart.Subtotal)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	w = do(r, http.MethodDelete, "/api/cart/items/p2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, store.TotalItems())

	w = do(r, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"lines":[],"totalItems":0,"subtotal":"0.00"}`, w.Body.String())
}

func TestAddCartItem_BadRequests(t *testing.T) {
	r, store := newTestRouter(t, &fakeSource{products: products()})

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/cart/items", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/cart/items", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/cart/items", `{"product":{"id":"  "}}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/cart/items", `{"productId":"missing"}`).Code)

	assert.Zero(t, store.TotalItems())
}

func TestCheckout(t *testing.T) {
	r, store := newTestRouter(t, &fakeSource{products: products()})

	w := do(r, http.MethodPost, "/api/checkout", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"FAILED_PRECONDITION"`)

	store.AddToCart(context.Background(), products()[0])
	store.AddToCart(context.Background(), products()[0])

	w = do(r, http.MethodGet, "/api/checkout/quote", "")
	require.Equal(t, http.StatusOK, w.Code)
	var quote quoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, "30.00", quote.Total)
	assert.Equal(t, 2, quote.TotalItems)

	w = do(r, http.MethodPost, "/api/checkout", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var receipt receiptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.NotEmpty(t, receipt.OrderID)
	assert.Equal(t, checkoutapp.SuccessMessage, receipt.Message)
	assert.Equal(t, "30.00", receipt.Quote.Total)
	assert.Empty(t, store.Cart())
}

func TestSubmitContact(t *testing.T) {
	r, _ := newTestRouter(t, &fakeSource{})

	w := do(r, http.MethodPost, "/api/contact", `{"fullName":"Jo","subject":"","email":"nope","body":"Hello there"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errBody errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, "INVALID_ARGUMENT", errBody.Code)
	assert.Equal(t, map[string]string{
		"fullName": "Full name must be at least 3 characters.",
		"subject":  "Subject is required.",
		"email":    "Must be a valid email address.",
	}, errBody.Fields)

	w = do(r, http.MethodPost, "/api/contact", `{"fullName":"Jo Nordmann","subject":"Order","email":"jo@example.com","body":"Where is my parcel?"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var sub submissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, contactapp.SuccessMessage, sub.Message)
}

func TestAddCartItem_BatchByIDs(t *testing.T) {
	r, store := newTestRouter(t, &fakeSource{products: products()})

	w := do(r, http.MethodPost, "/api/cart/items", `{"productIds":["p1","missing","p2"]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, store.TotalItems(), "nothing is added when one id fails")

	w = do(r, http.MethodPost, "/api/cart/items", `{"productIds":["p1","p2","p1"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var cart cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "p1", cart.Lines[0].ID)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, "34.50", cart.Subtotal)
}

func TestGetCartItem(t *testing.T) {
	r, store := newTestRouter(t, &fakeSource{products: products()})
	store.AddToCart(context.Background(), products()[1])

	w := do(r, http.MethodGet, "/api/cart/items/p2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":1`)
	assert.Contains(t, w.Body.String(), `"title":"Wool Socks"`)

	w = do(r, http.MethodGet, "/api/cart/items/p1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
