package service

import "github.com/niksmo/zeroproof/internal/core/domain"

type CollectionCardView struct {
	ID          string
	Handle      string
	Name        string
	Description string
	Image       string
	Featured    bool

	// ViewProductsID is the collection navigated to by "view products".
	ViewProductsID string
}

// A CollectionCard presents a collection summary. It holds no state.
type CollectionCard struct {
	collection domain.Collection
}

func NewCollectionCard(c domain.Collection) CollectionCard {
	return CollectionCard{c}
}

func (c CollectionCard) View() CollectionCardView {
	return CollectionCardView{
		ID:          c.collection.ID,
		Handle:      c.collection.Handle,
		Name:        c.collection.Name,
		Description: c.collection.Description,
		Image:       c.collection.Image,
		Featured:    c.collection.Featured,

		ViewProductsID: c.ViewProducts(),
	}
}

// ViewProducts returns the collection id handed to navigation when the
// shopper asks for the collection's products.
func (c CollectionCard) ViewProducts() string {
	return c.collection.ID
}
