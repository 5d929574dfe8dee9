package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/internal/core/port"
	"github.com/niksmo/zeroproof/internal/core/variant"
	"github.com/niksmo/zeroproof/pkg/markup"
	"github.com/shopspring/decimal"
)

const (
	labelAddToCart  = "ADD TO CART"
	labelOutOfStock = "OUT OF STOCK"
)

// PriceFormatter renders a price for display.
type PriceFormatter interface {
	Format(decimal.Decimal) string
}

type (
	ProductCardView struct {
		ProductID    string
		VariantID    string
		Slug         string
		Title        string
		Description  string
		Image        string
		Featured     bool
		InStock      bool
		Discount     int
		HasDiscount  bool
		Price        string
		CompareAt    string
		Options      []OptionView
		Selection    domain.Selection
		CanAddToCart bool
		ButtonLabel  string
	}

	OptionView struct {
		Name   string
		Values []OptionValueView
	}

	OptionValueView struct {
		Value    string
		Swatch   string
		Selected bool
		// Dimmed marks values other than the selected one of the option.
		Dimmed   bool
		Disabled bool
	}
)

// A ProductCard presents one product and owns the shopper's selection for
// it. A card is not safe for concurrent use; every request builds its own.
type ProductCard struct {
	product   domain.Product
	selection domain.Selection
}

// NewProductCard returns a card with the selection restricted to declared
// options and values.
func NewProductCard(p domain.Product, s domain.Selection) *ProductCard {
	return &ProductCard{product: p, selection: variant.Normalize(p, s)}
}

func (c *ProductCard) Product() domain.Product {
	return c.product
}

// Selection returns a copy of the current selection.
func (c *ProductCard) Selection() domain.Selection {
	return c.selection.Clone()
}

func (c *ProductCard) Resolved() (domain.Variant, bool) {
	return variant.Resolve(c.product, c.selection)
}

// Select sets option to value. It is a no-op reporting false when the value
// would lead to an out-of-stock or nonexistent combination.
func (c *ProductCard) Select(option, value string) bool {
	if !variant.IsValueAvailable(c.product, c.selection, option, value) {
		return false
	}
	c.selection = c.selection.With(option, value)
	return true
}

// CanAddToCart reports whether the selection resolves to an in-stock
// variant.
func (c *ProductCard) CanAddToCart() bool {
	v, ok := c.Resolved()
	return ok && v.InStock
}

// InStock reports the stock of the resolved variant, or of the product as
// a whole while nothing is resolved.
func (c *ProductCard) InStock() bool {
	if v, ok := c.Resolved(); ok {
		return v.InStock
	}
	return c.product.InStock()
}

// AddToCart emits one unit of the resolved variant to the cart
// collaborator. It is rejected with [domain.ErrAddToCartDisabled] unless
// the selection resolves to an in-stock variant.
func (c *ProductCard) AddToCart(
	ctx context.Context, cartID string, emitter port.CartEmitter,
) (domain.CartItem, error) {
	const op = "ProductCard.AddToCart"

	v, ok := c.Resolved()
	if !ok || !v.InStock {
		return domain.CartItem{}, fmt.Errorf("%s: %w", op, domain.ErrAddToCartDisabled)
	}

	item := domain.CartItem{
		EventID:    uuid.NewString(),
		CartID:     cartID,
		ProductID:  c.product.ID,
		VariantID:  v.ID,
		Quantity:   1,
		OccurredAt: time.Now().UTC(),
	}

	if err := emitter.EmitCartItem(ctx, item); err != nil {
		return domain.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func (c *ProductCard) View(f PriceFormatter) ProductCardView {
	const op = "ProductCard.View"

	p := c.product
	v := ProductCardView{
		ProductID:   p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Description: markup.PlainText(p.Description),
		Featured:    p.Featured,
		InStock:     c.InStock(),
		Selection:   c.Selection(),
	}

	var resolvedPtr *domain.Variant
	resolved, ok := c.Resolved()
	if ok {
		resolvedPtr = &resolved
		v.VariantID = resolved.ID
	} else if p.HasOptions() && variant.Complete(p, c.selection) {
		slog.Debug(
			"complete selection matches no variant",
			"op", op, "product", p.ID, "selection", c.selection,
		)
	}

	v.Image = variant.Image(p, resolvedPtr)

	if price, ok := variant.CurrentPrice(p, resolvedPtr); ok {
		v.Price = f.Format(price)
		if compareAt, ok := variant.CompareAt(p, resolvedPtr); ok {
			v.CompareAt = f.Format(compareAt)
			v.Discount, v.HasDiscount = variant.DiscountPercentage(price, compareAt)
		}
	}

	v.Options = c.optionViews()
	v.CanAddToCart = c.CanAddToCart()
	v.ButtonLabel = labelOutOfStock
	if v.InStock {
		v.ButtonLabel = labelAddToCart
	}
	return v
}

func (c *ProductCard) optionViews() []OptionView {
	views := make([]OptionView, 0, len(c.product.Options))
	for _, o := range c.product.Options {
		selected, hasSelected := c.selection[o.Name]
		ov := OptionView{
			Name:   o.Name,
			Values: make([]OptionValueView, 0, len(o.Values)),
		}
		for _, value := range o.Values {
			swatch, _ := o.Swatch(value)
			isSelected := hasSelected && selected == value
			ov.Values = append(ov.Values, OptionValueView{
				Value:    value,
				Swatch:   swatch,
				Selected: isSelected,
				Dimmed:   hasSelected && !isSelected,
				Disabled: !variant.IsValueAvailable(c.product, c.selection, o.Name, value),
			})
		}
		views = append(views, ov)
	}
	return views
}
