// Package variant resolves a shopper's option selection to a purchasable
// variant of a product.
//
// Every function here is total: malformed catalog data never panics, a
// variant that references an undeclared option or value simply never
// matches a selection.
package variant

import (
	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Normalize returns a copy of the selection restricted to options and
// values declared on the product.
func Normalize(p domain.Product, s domain.Selection) domain.Selection {
	n := make(domain.Selection, len(s))
	for name, value := range s {
		o, ok := p.Option(name)
		if !ok || !o.HasValue(value) {
			continue
		}
		n[name] = value
	}
	return n
}

// Complete reports whether the selection carries one value per declared
// option. A product without options is always complete.
func Complete(p domain.Product, s domain.Selection) bool {
	return len(Normalize(p, s)) == len(p.Options)
}

// Resolve returns the variant whose option map equals the selection.
//
// It reports false while the selection is incomplete or when no variant
// carries the selected combination. A product without options resolves to
// its first variant for any selection.
func Resolve(p domain.Product, s domain.Selection) (domain.Variant, bool) {
	if !p.HasOptions() {
		if len(p.Variants) == 0 {
			return domain.Variant{}, false
		}
		return p.Variants[0], true
	}

	n := Normalize(p, s)
	if len(n) != len(p.Options) {
		return domain.Variant{}, false
	}

	for _, v := range p.Variants {
		if equal(v.Options, n) {
			return v, true
		}
	}
	return domain.Variant{}, false
}

// IsValueAvailable reports whether choosing value for option keeps at
// least one in-stock variant reachable from the current selection.
func IsValueAvailable(
	p domain.Product, s domain.Selection, option, value string,
) bool {
	o, ok := p.Option(option)
	if !ok || !o.HasValue(value) {
		return false
	}

	n := Normalize(p, s)
	n[option] = value

	for _, v := range p.Variants {
		if v.InStock && matches(v.Options, n) {
			return true
		}
	}
	return false
}

// LowestPriced returns the cheapest variant. Ties go to the variant
// declared first.
func LowestPriced(p domain.Product) (domain.Variant, bool) {
	if len(p.Variants) == 0 {
		return domain.Variant{}, false
	}
	lowest := p.Variants[0]
	for _, v := range p.Variants[1:] {
		if v.Price.LessThan(lowest.Price) {
			lowest = v
		}
	}
	return lowest, true
}

// Displayed returns the variant whose price the card shows: the resolved
// one when it belongs to the product, else the lowest priced.
func Displayed(p domain.Product, resolved *domain.Variant) (domain.Variant, bool) {
	if resolved != nil {
		if v, ok := p.Variant(resolved.ID); ok {
			return v, true
		}
	}
	return LowestPriced(p)
}

// CurrentPrice returns the price of the resolved variant, falling back to
// the lowest priced variant. It reports false for a product without
// variants.
func CurrentPrice(
	p domain.Product, resolved *domain.Variant,
) (decimal.Decimal, bool) {
	v, ok := Displayed(p, resolved)
	if !ok {
		return decimal.Zero, false
	}
	return v.Price, true
}

// CompareAt returns the compare-at price of the displayed variant when it
// is above the variant price.
func CompareAt(
	p domain.Product, resolved *domain.Variant,
) (decimal.Decimal, bool) {
	v, ok := Displayed(p, resolved)
	if !ok || v.CompareAt == nil {
		return decimal.Zero, false
	}
	if !v.CompareAt.GreaterThan(v.Price) {
		return decimal.Zero, false
	}
	return *v.CompareAt, true
}

var hundred = decimal.NewFromInt(100)

// DiscountPercentage returns round((compareAt-price)/compareAt*100) when
// compareAt is above price. Halves round away from zero.
func DiscountPercentage(price, compareAt decimal.Decimal) (int, bool) {
	if !compareAt.GreaterThan(price) || !compareAt.IsPositive() {
		return 0, false
	}
	pct := compareAt.Sub(price).Div(compareAt).Mul(hundred).Round(0)
	return int(pct.IntPart()), true
}

// Image returns the resolved variant image, else the first product image.
func Image(p domain.Product, resolved *domain.Variant) string {
	if resolved != nil && resolved.Image != "" {
		return resolved.Image
	}
	if len(p.Images) != 0 {
		return p.Images[0]
	}
	return ""
}

func equal(options map[string]string, s domain.Selection) bool {
	if len(options) != len(s) {
		return false
	}
	return matches(options, s)
}

// matches reports whether options agree with every entry of s.
func matches(options map[string]string, s domain.Selection) bool {
	for name, value := range s {
		if options[name] != value {
			return false
		}
	}
	return true
}
