package service_test

import (
	"context"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type dollars struct{}

func (dollars) Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

type MockCartEmitter struct {
	mock.Mock
}

func (m *MockCartEmitter) EmitCartItem(ctx context.Context, item domain.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type MockCartReader struct {
	mock.Mock
}

func (m *MockCartReader) ReadCart(ctx context.Context, cartID string) (domain.Cart, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

type staticCatalog domain.Catalog

func (c staticCatalog) Snapshot() domain.Catalog {
	return domain.Catalog(c)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pricePtr(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

func citrusSpritzMix() domain.Product {
	return domain.Product{
		ID:          "p-citrus",
		Slug:        "citrus-spritz-mix",
		Title:       "Citrus Spritz Mix",
		Description: "<p>Bright <em>bitter orange</em> aperitivo</p>",
		Images:      []string{"https://cdn.test/citrus.jpg"},
		Options: []domain.Option{
			{Name: "Size", Values: []string{"250ml", "500ml"}},
		},
		Variants: []domain.Variant{
			{
				ID:      "v-250",
				Options: map[string]string{"Size": "250ml"},
				Price:   price("12.00"),
				InStock: true,
			},
			{
				ID:        "v-500",
				Options:   map[string]string{"Size": "500ml"},
				Price:     price("20.00"),
				CompareAt: pricePtr("25.00"),
				InStock:   true,
			},
		},
	}
}

func botanicalGin() domain.Product {
	return domain.Product{
		ID:          "p-gin",
		Slug:        "botanical-gin",
		Title:       "Botanical Gin",
		Description: "Juniper forward, zero proof.",
		Featured:    true,
		Variants: []domain.Variant{
			{ID: "v-gin", Price: price("32.00"), InStock: false},
		},
	}
}

func sizeFlavorTonic() domain.Product {
	return domain.Product{
		ID:    "p-tonic",
		Slug:  "yuzu-tonic",
		Title: "Yuzu Tonic",
		Options: []domain.Option{
			{Name: "Size", Values: []string{"250ml", "750ml"}},
			{
				Name:     "Color",
				Values:   []string{"Lime", "Yuzu"},
				Swatches: map[string]string{"Lime": "#32CD32", "Yuzu": "#F7D94C"},
			},
		},
		Variants: []domain.Variant{
			{
				ID:      "v-250-lime",
				Options: map[string]string{"Size": "250ml", "Color": "Lime"},
				Price:   price("9.00"),
				InStock: true,
			},
			{
				ID:      "v-250-yuzu",
				Options: map[string]string{"Size": "250ml", "Color": "Yuzu"},
				Price:   price("9.00"),
				InStock: true,
			},
			{
				ID:      "v-750-yuzu",
				Options: map[string]string{"Size": "750ml", "Color": "Yuzu"},
				Price:   price("24.00"),
				InStock: true,
			},
		},
	}
}
