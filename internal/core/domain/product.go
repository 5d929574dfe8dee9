package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID          string
		Slug        string
		Title       string
		Description string
		Images      []string
		Options     []Option
		Variants    []Variant
		Featured    bool
	}

	// An Option is a named axis of choice with an ordered set of values.
	Option struct {
		Name     string
		Values   []string
		Swatches map[string]string
	}

	Variant struct {
		ID        string
		Options   map[string]string
		Price     decimal.Decimal
		CompareAt *decimal.Decimal
		Image     string
		InStock   bool
	}
)

// InStock reports whether any variant of the product can be bought.
func (p Product) InStock() bool {
	for _, v := range p.Variants {
		if v.InStock {
			return true
		}
	}
	return false
}

// HasOptions reports whether the shopper has anything to choose.
func (p Product) HasOptions() bool {
	return len(p.Options) != 0
}

func (p Product) Option(name string) (Option, bool) {
	for _, o := range p.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

func (o Option) HasValue(value string) bool {
	for _, v := range o.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Swatch returns the display color for value. Only color options carry
// swatches on the storefront.
func (o Option) Swatch(value string) (string, bool) {
	if !o.IsColor() {
		return "", false
	}
	s, ok := o.Swatches[value]
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (o Option) IsColor() bool {
	return strings.EqualFold(o.Name, "color")
}

type Collection struct {
	ID          string
	Handle      string
	Name        string
	Description string
	Image       string
	Featured    bool
	ProductIDs  []string
}

// Contains reports whether the product belongs to the collection.
func (c Collection) Contains(productID string) bool {
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
