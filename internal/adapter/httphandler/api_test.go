package httphandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postJSON(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestAPIGetProducts(t *testing.T) {
	env := newTestEnv(testCatalog())

	w := serve(env.mux, httptest.NewRequest(http.MethodGet, "/v1/products?q=spritz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var res ProductList
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.False(t, res.Loading)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "citrus-spritz-mix", res.Products[0].Slug)
	assert.Equal(t, "$12.00", res.Products[0].Price)
	assert.False(t, res.Products[0].CanAddToCart)
}

func TestAPIGetProduct(t *testing.T) {
	env := newTestEnv(testCatalog())

	t.Run("Resolved", func(t *testing.T) {
		w := serve(env.mux, httptest.NewRequest(
			http.MethodGet, "/v1/products/yuzu-tonic?opt.Size=750ml&opt.Color=Yuzu", nil,
		))
		require.Equal(t, http.StatusOK, w.Code)

		var p Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
		assert.Equal(t, "v-tonic-750-yuzu", p.VariantID)
		assert.Equal(t, "$9.99", p.Price)
		assert.Equal(t, "$14.99", p.CompareAt)
		require.NotNil(t, p.Discount)
		assert.Equal(t, 33, *p.Discount)
		assert.True(t, p.CanAddToCart)
		assert.Equal(t, map[string]string{"Size": "750ml", "Color": "Yuzu"}, p.Selection)
	})

	t.Run("Availability", func(t *testing.T) {
		w := serve(env.mux, httptest.NewRequest(
			http.MethodGet, "/v1/products/yuzu-tonic?opt.Size=750ml", nil,
		))
		require.Equal(t, http.StatusOK, w.Code)

		var p Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
		assert.False(t, p.CanAddToCart)
		require.Len(t, p.Options, 2)

		colors := p.Options[1]
		assert.Equal(t, "Color", colors.Name)
		assert.Equal(t, OptionValue{
			Value: "Lime", Swatch: "#9acd32", Available: false,
		}, colors.Values[0])
		assert.True(t, colors.Values[1].Available)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		w := serve(env.mux, httptest.NewRequest(http.MethodGet, "/v1/products/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPIPostCart(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		env := newTestEnv(testCatalog())
		cartID := "7c3f6e0a-4a55-4a57-9b3c-3f3c4f5a0d11"
		env.emitter.On("EmitCartItem", mock.Anything, mock.MatchedBy(
			func(item domain.CartItem) bool {
				return item.CartID == cartID && item.VariantID == "v-citrus-500"
			},
		)).Return(nil).Once()

		w := serve(env.mux, postJSON("/v1/cart", `{
			"cart_id": "7c3f6e0a-4a55-4a57-9b3c-3f3c4f5a0d11",
			"slug": "citrus-spritz-mix",
			"selection": {"Size": "500ml"}
		}`))
		require.Equal(t, http.StatusAccepted, w.Code)

		var item CartItem
		require.NoError(t, json.NewDecoder(w.Body).Decode(&item))
		assert.Equal(t, cartID, item.CartID)
		assert.Equal(t, "p-citrus", item.ProductID)
		assert.Equal(t, 1, item.Quantity)
		assert.NotEmpty(t, item.EventID)
		env.emitter.AssertExpectations(t)
	})

	t.Run("Disabled", func(t *testing.T) {
		env := newTestEnv(testCatalog())
		w := serve(env.mux, postJSON("/v1/cart", `{"slug": "botanical-gin"}`))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("InvalidCartID", func(t *testing.T) {
		env := newTestEnv(testCatalog())
		w := serve(env.mux, postJSON("/v1/cart", `{"cart_id": "x", "slug": "botanical-gin"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		env := newTestEnv(testCatalog())
		w := serve(env.mux, postJSON("/v1/cart", `{"slug":`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MediaType", func(t *testing.T) {
		env := newTestEnv(testCatalog())
		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart", strings.NewReader(`{"slug": "x"}`),
		)
		r.Header.Set("Content-Type", "text/plain")
		w := serve(env.mux, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(testCatalog())
	w := serve(env.mux, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
