package domain

import "time"

// A CartItem is the add-to-cart intent handed to the cart collaborator.
type CartItem struct {
	EventID    string
	CartID     string
	ProductID  string
	VariantID  string
	Quantity   int
	OccurredAt time.Time
}

type CartLine struct {
	ProductID string
	VariantID string
	Quantity  int
}

type Cart struct {
	Lines []CartLine
}

// Add folds item into the cart, merging lines of the same variant.
func (c Cart) Add(item CartItem) Cart {
	lines := make([]CartLine, 0, len(c.Lines)+1)
	merged := false
	for _, l := range c.Lines {
		if l.ProductID == item.ProductID && l.VariantID == item.VariantID {
			l.Quantity += item.Quantity
			merged = true
		}
		lines = append(lines, l)
	}
	if !merged {
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	return Cart{Lines: lines}
}

// Size is the total quantity across lines.
func (c Cart) Size() (n int) {
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}
