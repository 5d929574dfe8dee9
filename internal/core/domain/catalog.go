package domain

// A Catalog is a read-only snapshot of the storefront data.
//
// The loading flags stay true until the corresponding list has been read
// from the catalog source at least once.
type Catalog struct {
	Products           []Product
	Collections        []Collection
	LoadingProducts    bool
	LoadingCollections bool
}

func (c Catalog) ProductBySlug(slug string) (Product, bool) {
	for _, p := range c.Products {
		if p.Slug == slug {
			return p, true
		}
	}
	return Product{}, false
}

func (c Catalog) CollectionByID(id string) (Collection, bool) {
	for _, col := range c.Collections {
		if col.ID == id {
			return col, true
		}
	}
	return Collection{}, false
}

func (c Catalog) CollectionByHandle(handle string) (Collection, bool) {
	for _, col := range c.Collections {
		if col.Handle == handle {
			return col, true
		}
	}
	return Collection{}, false
}
