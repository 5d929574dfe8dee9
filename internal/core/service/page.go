package service

import (
	"strings"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/pkg/markup"
)

const (
	msgNoSearchResults = "No spirits found. Try a different search."
	msgCatalogPending  = "Loading our zero-proof collection..."
)

// RenderState is the per-section choice between placeholders, the product
// grid and an empty-state message.
type RenderState int

const (
	StateSkeleton RenderState = iota
	StateGrid
	StateEmpty
)

func (s RenderState) String() string {
	switch s {
	case StateSkeleton:
		return "skeleton"
	case StateGrid:
		return "grid"
	case StateEmpty:
		return "empty"
	}
	return "unknown"
}

// SectionState picks how a section renders. The empty-state text is
// chosen separately by [EmptyMessage].
func SectionState(loading bool, n int) RenderState {
	switch {
	case loading:
		return StateSkeleton
	case n > 0:
		return StateGrid
	default:
		return StateEmpty
	}
}

// EmptyMessage is the text of an empty section.
func EmptyMessage(searchTerm string) string {
	if searchActive(searchTerm) {
		return msgNoSearchResults
	}
	return msgCatalogPending
}

// A Section is a fixed-size window of the filtered product list shown
// under a collection banner.
type Section struct {
	ID               string
	Title            string
	CollectionHandle string
	Offset           int
	Limit            int
	// ShowEmpty renders the empty-state message instead of a bare grid
	// when the window holds no products.
	ShowEmpty bool
}

// DefaultSections mirror the landing page layout.
var DefaultSections = []Section{
	{
		ID:               "na-spirits",
		Title:            "Non-Alcoholic Spirits",
		CollectionHandle: "na-spirits",
		Offset:           0,
		Limit:            6,
		ShowEmpty:        true,
	},
	{
		ID:               "bundles",
		Title:            "Starter Bundles",
		CollectionHandle: "starter-bundles",
		Offset:           6,
		Limit:            3,
	},
}

type (
	PageInput struct {
		Catalog      domain.Catalog
		SearchTerm   string
		CollectionID string
		Sections     []Section
	}

	IndexPage struct {
		SearchTerm         string
		SelectedCollection *CollectionCardView
		CollectionsState   RenderState
		Collections        []CollectionCardView
		Matched            int
		Sections           []SectionView
	}

	SectionView struct {
		ID           string
		Title        string
		Collection   *CollectionCardView
		State        RenderState
		Skeletons    int
		Products     []ProductCardView
		EmptyMessage string
	}
)

// FilterProducts keeps products whose title or plain-text description
// contains term, ignoring case. A blank term keeps every product.
func FilterProducts(ps []domain.Product, term string) []domain.Product {
	if !searchActive(term) {
		return ps
	}
	needle := strings.ToLower(strings.TrimSpace(term))

	var out []domain.Product
	for _, p := range ps {
		if containsFold(p.Title, needle) ||
			containsFold(markup.PlainText(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

// RestrictToCollection keeps products that belong to c, preserving order.
func RestrictToCollection(
	ps []domain.Product, c domain.Collection,
) []domain.Product {
	var out []domain.Product
	for _, p := range ps {
		if c.Contains(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// ComposePage lays out the landing page for the given catalog snapshot.
func ComposePage(in PageInput, f PriceFormatter) IndexPage {
	cat := in.Catalog
	page := IndexPage{SearchTerm: in.SearchTerm}

	// Products of a requested collection stay as placeholders until the
	// collection membership is known.
	loading := cat.LoadingProducts
	products := FilterProducts(cat.Products, in.SearchTerm)
	switch {
	case in.CollectionID == "":
	case cat.LoadingCollections:
		loading = true
	default:
		c, ok := cat.CollectionByID(in.CollectionID)
		if ok {
			view := NewCollectionCard(c).View()
			page.SelectedCollection = &view
		}
		products = RestrictToCollection(products, c)
	}
	page.Matched = len(products)

	page.CollectionsState = SectionState(
		cat.LoadingCollections, len(cat.Collections),
	)
	if page.CollectionsState == StateGrid {
		page.Collections = make([]CollectionCardView, len(cat.Collections))
		for i, c := range cat.Collections {
			page.Collections[i] = NewCollectionCard(c).View()
		}
	}

	sections := in.Sections
	if sections == nil {
		sections = DefaultSections
	}

	for _, s := range sections {
		page.Sections = append(
			page.Sections,
			composeSection(s, cat, products, loading, in.SearchTerm, f),
		)
	}
	return page
}

func composeSection(
	s Section,
	cat domain.Catalog,
	products []domain.Product,
	loading bool,
	searchTerm string,
	f PriceFormatter,
) SectionView {
	sv := SectionView{ID: s.ID, Title: s.Title}

	if !cat.LoadingCollections {
		if c, ok := cat.CollectionByHandle(s.CollectionHandle); ok {
			view := NewCollectionCard(c).View()
			sv.Collection = &view
		}
	}

	window := slice(products, s.Offset, s.Limit)
	sv.State = SectionState(loading, len(window))

	switch sv.State {
	case StateSkeleton:
		sv.Skeletons = s.Limit
	case StateEmpty:
		if !s.ShowEmpty {
			sv.State = StateGrid
			break
		}
		sv.EmptyMessage = EmptyMessage(searchTerm)
	case StateGrid:
		sv.Products = make([]ProductCardView, 0, len(window))
		for _, p := range window {
			sv.Products = append(sv.Products, NewProductCard(p, nil).View(f))
		}
	}
	return sv
}

func slice(ps []domain.Product, offset, limit int) []domain.Product {
	if offset >= len(ps) || limit <= 0 {
		return nil
	}
	end := min(offset+limit, len(ps))
	return ps[offset:end]
}

func searchActive(term string) bool {
	return strings.TrimSpace(term) != ""
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
