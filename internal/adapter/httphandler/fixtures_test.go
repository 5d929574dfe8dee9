package httphandler

import (
	"context"
	"net/http"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/internal/core/service"
	"github.com/niksmo/zeroproof/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

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

func testCatalog() staticCatalog {
	return staticCatalog{
		Products: []domain.Product{
			{
				ID:          "p-citrus",
				Slug:        "citrus-spritz-mix",
				Title:       "Citrus Spritz Mix",
				Description: "<p>Bitter <em>orange</em> aperitivo</p>",
				Images:      []string{"/img/citrus.jpg"},
				Options: []domain.Option{
					{Name: "Size", Values: []string{"250ml", "500ml"}},
				},
				Variants: []domain.Variant{
					{
						ID:      "v-citrus-250",
						Options: map[string]string{"Size": "250ml"},
						Price:   price("12.00"),
						InStock: true,
					},
					{
						ID:        "v-citrus-500",
						Options:   map[string]string{"Size": "500ml"},
						Price:     price("20.00"),
						CompareAt: pricePtr("25.00"),
						InStock:   true,
					},
				},
			},
			{
				ID:       "p-gin",
				Slug:     "botanical-gin",
				Title:    "Botanical Gin",
				Featured: true,
				Variants: []domain.Variant{
					{ID: "v-gin", Price: price("34.00")},
				},
			},
			{
				ID:    "p-tonic",
				Slug:  "yuzu-tonic",
				Title: "Yuzu Tonic",
				Options: []domain.Option{
					{Name: "Size", Values: []string{"250ml", "750ml"}},
					{
						Name:     "Color",
						Values:   []string{"Lime", "Yuzu"},
						Swatches: map[string]string{"Lime": "#9acd32", "Yuzu": "#f7d117"},
					},
				},
				Variants: []domain.Variant{
					{
						ID:      "v-tonic-250-lime",
						Options: map[string]string{"Size": "250ml", "Color": "Lime"},
						Price:   price("4.50"),
						InStock: true,
					},
					{
						ID:      "v-tonic-250-yuzu",
						Options: map[string]string{"Size": "250ml", "Color": "Yuzu"},
						Price:   price("4.50"),
					},
					{
						ID:        "v-tonic-750-yuzu",
						Options:   map[string]string{"Size": "750ml", "Color": "Yuzu"},
						Price:     price("9.99"),
						CompareAt: pricePtr("14.99"),
						InStock:   true,
					},
				},
			},
		},
		Collections: []domain.Collection{
			{
				ID:         "c-spirits",
				Handle:     "na-spirits",
				Name:       "Non-Alcoholic Spirits",
				ProductIDs: []string{"p-citrus", "p-gin"},
			},
		},
	}
}

type testEnv struct {
	mux     *http.ServeMux
	emitter *MockCartEmitter
	reader  *MockCartReader
}

func newTestEnv(catalog staticCatalog) testEnv {
	formatter, err := money.NewFormatter("en-US", "USD")
	if err != nil {
		panic(err)
	}

	env := testEnv{
		mux:     http.NewServeMux(),
		emitter: new(MockCartEmitter),
		reader:  new(MockCartReader),
	}
	sf := service.New(catalog, env.emitter, env.reader, formatter, nil)

	if err := RegisterStorefront(env.mux, sf); err != nil {
		panic(err)
	}
	RegisterAPI(env.mux, sf)
	return env
}
