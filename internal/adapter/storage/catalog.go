package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/internal/core/port"
	"github.com/niksmo/zeroproof/internal/core/variant"
	"github.com/shopspring/decimal"
)

var _ port.CatalogReader = (*CatalogRepository)(nil)

type (
	productRow struct {
		id, slug, title, description string
		images                       string
		featured                     bool
	}

	optionRow struct {
		productID, name  string
		values, swatches string
	}

	variantRow struct {
		id, productID string
		options       string
		price         decimal.Decimal
		compareAt     decimal.NullDecimal
		image         string
		inStock       bool
	}

	collectionRow struct {
		id, handle, name, description, image string
		featured                             bool
	}

	memberRow struct {
		collectionID, productID string
	}
)

type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

func (r CatalogRepository) ReadProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogRepository.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := queryRows(ctx, r.sqldb, `
		SELECT id, slug, title, description, images::text, featured
		FROM products
		ORDER BY position, id;`,
		func(rows *sql.Rows) (v productRow, err error) {
			err = rows.Scan(
				&v.id, &v.slug, &v.title, &v.description, &v.images, &v.featured,
			)
			return
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: products: %w", op, err)
	}

	options, err := queryRows(ctx, r.sqldb, `
		SELECT product_id, name, option_values::text, swatches::text
		FROM product_options
		ORDER BY product_id, position, name;`,
		func(rows *sql.Rows) (v optionRow, err error) {
			err = rows.Scan(&v.productID, &v.name, &v.values, &v.swatches)
			return
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: options: %w", op, err)
	}

	variants, err := queryRows(ctx, r.sqldb, `
		SELECT id, product_id, options::text, price, compare_at, image, in_stock
		FROM product_variants
		ORDER BY product_id, position, id;`,
		func(rows *sql.Rows) (v variantRow, err error) {
			err = rows.Scan(
				&v.id, &v.productID, &v.options,
				&v.price, &v.compareAt, &v.image, &v.inStock,
			)
			return
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: variants: %w", op, err)
	}

	ps, err := assembleProducts(products, options, variants)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r CatalogRepository) ReadCollections(
	ctx context.Context,
) ([]domain.Collection, error) {
	const op = "CatalogRepository.ReadCollections"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	collections, err := queryRows(ctx, r.sqldb, `
		SELECT id, handle, name, description, image, featured
		FROM collections
		ORDER BY position, id;`,
		func(rows *sql.Rows) (v collectionRow, err error) {
			err = rows.Scan(
				&v.id, &v.handle, &v.name, &v.description, &v.image, &v.featured,
			)
			return
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: collections: %w", op, err)
	}

	members, err := queryRows(ctx, r.sqldb, `
		SELECT collection_id, product_id
		FROM collection_products
		ORDER BY collection_id, position, product_id;`,
		func(rows *sql.Rows) (v memberRow, err error) {
			err = rows.Scan(&v.collectionID, &v.productID)
			return
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: members: %w", op, err)
	}

	return assembleCollections(collections, members), nil
}

func queryRows[T any](
	ctx context.Context,
	db sqldb,
	query string,
	scan func(*sql.Rows) (T, error),
) (vs []T, err error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, rows.Err()
}

// assembleProducts joins the rows into products keeping the products
// order. Variants violating catalog integrity are logged and dropped.
func assembleProducts(
	products []productRow, options []optionRow, variants []variantRow,
) ([]domain.Product, error) {
	const op = "assembleProducts"
	log := slog.With("op", op)

	index := make(map[string]int, len(products))
	ps := make([]domain.Product, len(products))
	for i, row := range products {
		p := domain.Product{
			ID:          row.id,
			Slug:        row.slug,
			Title:       row.title,
			Description: row.description,
			Featured:    row.featured,
		}
		if err := json.Unmarshal([]byte(row.images), &p.Images); err != nil {
			return nil, fmt.Errorf("product %q images: %w", row.id, err)
		}
		ps[i] = p
		index[row.id] = i
	}

	for _, row := range options {
		i, ok := index[row.productID]
		if !ok {
			continue
		}
		o := domain.Option{Name: row.name}
		if err := json.Unmarshal([]byte(row.values), &o.Values); err != nil {
			return nil, fmt.Errorf("option %q of %q: %w", row.name, row.productID, err)
		}
		if err := json.Unmarshal([]byte(row.swatches), &o.Swatches); err != nil {
			return nil, fmt.Errorf("swatches %q of %q: %w", row.name, row.productID, err)
		}
		if len(o.Swatches) == 0 {
			o.Swatches = nil
		}
		ps[i].Options = append(ps[i].Options, o)
	}

	for _, row := range variants {
		i, ok := index[row.productID]
		if !ok {
			continue
		}
		v := domain.Variant{
			ID:      row.id,
			Price:   row.price,
			Image:   row.image,
			InStock: row.inStock,
		}
		if err := json.Unmarshal([]byte(row.options), &v.Options); err != nil {
			return nil, fmt.Errorf("variant %q options: %w", row.id, err)
		}
		if row.compareAt.Valid {
			compareAt := row.compareAt.Decimal
			v.CompareAt = &compareAt
		}
		ps[i].Variants = append(ps[i].Variants, v)
	}

	for i, p := range ps {
		sanitized, err := variant.Sanitize(p)
		if err != nil {
			log.Warn("inconsistent variants dropped", "product", p.Slug, "err", err)
		}
		ps[i] = sanitized
	}
	return ps, nil
}

func assembleCollections(
	collections []collectionRow, members []memberRow,
) []domain.Collection {
	index := make(map[string]int, len(collections))
	cs := make([]domain.Collection, len(collections))
	for i, row := range collections {
		cs[i] = domain.Collection{
			ID:          row.id,
			Handle:      row.handle,
			Name:        row.name,
			Description: row.description,
			Image:       row.image,
			Featured:    row.featured,
		}
		index[row.id] = i
	}

	for _, row := range members {
		if i, ok := index[row.collectionID]; ok {
			cs[i].ProductIDs = append(cs[i].ProductIDs, row.productID)
		}
	}
	return cs
}
