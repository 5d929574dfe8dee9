package service

import (
	"context"
	"fmt"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/internal/core/port"
)

type IndexQuery struct {
	SearchTerm   string
	CollectionID string
}

type Service struct {
	catalog    port.CatalogSnapshotter
	cartEmit   port.CartEmitter
	cartReader port.CartReader
	formatter  PriceFormatter
	sections   []Section
}

func New(
	catalog port.CatalogSnapshotter,
	cartEmit port.CartEmitter,
	cartReader port.CartReader,
	formatter PriceFormatter,
	sections []Section,
) Service {
	if sections == nil {
		sections = DefaultSections
	}
	return Service{
		catalog,
		cartEmit,
		cartReader,
		formatter,
		sections,
	}
}

func (s Service) IndexPage(ctx context.Context, q IndexQuery) (IndexPage, error) {
	const op = "Service.IndexPage"

	if err := ctx.Err(); err != nil {
		return IndexPage{}, fmt.Errorf("%s: %w", op, err)
	}

	cat := s.catalog.Snapshot()
	if q.CollectionID != "" && !cat.LoadingCollections {
		if _, ok := cat.CollectionByID(q.CollectionID); !ok {
			return IndexPage{}, fmt.Errorf(
				"%s: %q: %w", op, q.CollectionID, domain.ErrCollectionNotFound,
			)
		}
	}

	page := ComposePage(PageInput{
		Catalog:      cat,
		SearchTerm:   q.SearchTerm,
		CollectionID: q.CollectionID,
		Sections:     s.sections,
	}, s.formatter)
	return page, nil
}

// Products renders every product matching searchTerm, in catalog order.
// The flag reports that the catalog is still loading.
func (s Service) Products(
	ctx context.Context, searchTerm string,
) ([]ProductCardView, bool, error) {
	const op = "Service.Products"

	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	cat := s.catalog.Snapshot()
	ps := FilterProducts(cat.Products, searchTerm)
	views := make([]ProductCardView, len(ps))
	for i, p := range ps {
		views[i] = NewProductCard(p, nil).View(s.formatter)
	}
	return views, cat.LoadingProducts, nil
}

// ProductPage renders the card of the product with slug under selection.
func (s Service) ProductPage(
	ctx context.Context, slug string, sel domain.Selection,
) (ProductCardView, error) {
	const op = "Service.ProductPage"

	card, err := s.card(ctx, slug, sel)
	if err != nil {
		return ProductCardView{}, fmt.Errorf("%s: %w", op, err)
	}
	return card.View(s.formatter), nil
}

// SelectOption applies one option click to sel. The returned flag is false
// when the click was rejected, in which case the selection is unchanged.
func (s Service) SelectOption(
	ctx context.Context, slug string, sel domain.Selection, option, value string,
) (domain.Selection, bool, error) {
	const op = "Service.SelectOption"

	card, err := s.card(ctx, slug, sel)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	ok := card.Select(option, value)
	return card.Selection(), ok, nil
}

func (s Service) AddToCart(
	ctx context.Context, cartID, slug string, sel domain.Selection,
) (domain.CartItem, error) {
	const op = "Service.AddToCart"

	card, err := s.card(ctx, slug, sel)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := card.AddToCart(ctx, cartID, s.cartEmit)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// CartSize returns the number of units in the cart. Without a cart reader
// it is always zero.
func (s Service) CartSize(ctx context.Context, cartID string) (int, error) {
	const op = "Service.CartSize"

	if s.cartReader == nil || cartID == "" {
		return 0, nil
	}

	cart, err := s.cartReader.ReadCart(ctx, cartID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return cart.Size(), nil
}

func (s Service) card(
	ctx context.Context, slug string, sel domain.Selection,
) (*ProductCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, ok := s.catalog.Snapshot().ProductBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("%q: %w", slug, domain.ErrProductNotFound)
	}
	return NewProductCard(p, sel), nil
}
