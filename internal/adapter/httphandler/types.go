package httphandler

import (
	"time"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/internal/core/service"
)

type (
	Product struct {
		ProductID    string            `json:"product_id"`
		VariantID    string            `json:"variant_id,omitempty"`
		Slug         string            `json:"slug"`
		Title        string            `json:"title"`
		Description  string            `json:"description"`
		Image        string            `json:"image,omitempty"`
		Featured     bool              `json:"featured"`
		InStock      bool              `json:"in_stock"`
		Price        string            `json:"price,omitempty"`
		CompareAt    string            `json:"compare_at,omitempty"`
		Discount     *int              `json:"discount_percent,omitempty"`
		Options      []ProductOption   `json:"options,omitempty"`
		Selection    map[string]string `json:"selection"`
		CanAddToCart bool              `json:"can_add_to_cart"`
	}

	ProductOption struct {
		Name   string        `json:"name"`
		Values []OptionValue `json:"values"`
	}

	OptionValue struct {
		Value     string `json:"value"`
		Swatch    string `json:"swatch,omitempty"`
		Selected  bool   `json:"selected"`
		Available bool   `json:"available"`
	}

	ProductList struct {
		Loading  bool      `json:"loading"`
		Products []Product `json:"products"`
	}
)

type (
	CartRequest struct {
		CartID    string            `json:"cart_id"`
		Slug      string            `json:"slug"`
		Selection map[string]string `json:"selection"`
	}

	CartItem struct {
		EventID    string    `json:"event_id"`
		CartID     string    `json:"cart_id"`
		ProductID  string    `json:"product_id"`
		VariantID  string    `json:"variant_id"`
		Quantity   int       `json:"quantity"`
		OccurredAt time.Time `json:"occurred_at"`
	}
)

func toProduct(v service.ProductCardView) Product {
	p := Product{
		ProductID:    v.ProductID,
		VariantID:    v.VariantID,
		Slug:         v.Slug,
		Title:        v.Title,
		Description:  v.Description,
		Image:        v.Image,
		Featured:     v.Featured,
		InStock:      v.InStock,
		Price:        v.Price,
		CompareAt:    v.CompareAt,
		Selection:    v.Selection,
		CanAddToCart: v.CanAddToCart,
	}
	if p.Selection == nil {
		p.Selection = map[string]string{}
	}
	if v.HasDiscount {
		d := v.Discount
		p.Discount = &d
	}

	for _, o := range v.Options {
		po := ProductOption{
			Name:   o.Name,
			Values: make([]OptionValue, len(o.Values)),
		}
		for i, ov := range o.Values {
			po.Values[i] = OptionValue{
				Value:     ov.Value,
				Swatch:    ov.Swatch,
				Selected:  ov.Selected,
				Available: !ov.Disabled,
			}
		}
		p.Options = append(p.Options, po)
	}
	return p
}

func toCartItem(v domain.CartItem) CartItem {
	return CartItem{
		EventID:    v.EventID,
		CartID:     v.CartID,
		ProductID:  v.ProductID,
		VariantID:  v.VariantID,
		Quantity:   v.Quantity,
		OccurredAt: v.OccurredAt,
	}
}
