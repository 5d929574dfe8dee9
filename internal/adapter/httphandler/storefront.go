package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/niksmo/zeroproof/internal/core/domain"
	"github.com/niksmo/zeroproof/internal/core/service"
)

// A Storefront serves the shopper facing use cases.
type Storefront interface {
	IndexPage(ctx context.Context, q service.IndexQuery) (service.IndexPage, error)
	Products(ctx context.Context, searchTerm string) ([]service.ProductCardView, bool, error)
	ProductPage(ctx context.Context, slug string, sel domain.Selection) (service.ProductCardView, error)
	SelectOption(ctx context.Context, slug string, sel domain.Selection, option, value string) (domain.Selection, bool, error)
	AddToCart(ctx context.Context, cartID, slug string, sel domain.Selection) (domain.CartItem, error)
	CartSize(ctx context.Context, cartID string) (int, error)
}

var _ Storefront = (*service.Service)(nil)

// GET / (200 OK, 404 Not found for an unknown collection)
// GET /collections/{id} (303 See other)
// GET /products/{slug}?opt.<Name>=<Value> (200 OK, 404 Not found)
// POST /products/{slug}/select form option, value, opt.* (303 See other)
// POST /cart form slug, opt.* (303 See other, 404 Not found, 409 Conflict)

type StorefrontHandler struct {
	sf       Storefront
	renderer renderer
}

func RegisterStorefront(mux *http.ServeMux, sf Storefront) error {
	rd, err := newRenderer()
	if err != nil {
		return err
	}

	h := StorefrontHandler{sf, rd}
	mux.HandleFunc("GET /{$}", h.GetIndex)
	mux.HandleFunc("GET /collections/{id}", h.GetCollection)
	mux.HandleFunc("GET /products/{slug}", h.GetProduct)
	mux.HandleFunc("POST /products/{slug}/select", h.PostSelect)
	mux.HandleFunc("POST /cart", h.PostCart)
	return nil
}

func (h StorefrontHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetIndex"
	log := slog.With("op", op)

	q := service.IndexQuery{
		SearchTerm:   r.URL.Query().Get("q"),
		CollectionID: r.URL.Query().Get("collection"),
	}

	page, err := h.sf.IndexPage(r.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		log.Error("failed to compose page", "err", err)
		return
	}

	data := indexData{
		SearchTerm: q.SearchTerm,
		CartSize:   h.cartSize(r),
		Page:       page,
	}
	if err := h.renderer.render(w, http.StatusOK, pageIndex, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		log.Error("failed to render", "err", err)
	}
}

// GetCollection hands the collection id over to the index page.
func (h StorefrontHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	target := "/?" + url.Values{"collection": {r.PathValue("id")}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.GetProduct"
	log := slog.With("op", op)

	slug := r.PathValue("slug")
	sel := selectionFromValues(r.URL.Query())

	v, err := h.sf.ProductPage(r.Context(), slug, sel)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		log.Error("failed to compose product page", "err", err)
		return
	}

	data := productData{
		CartSize: h.cartSize(r),
		Product:  v,
	}
	if err := h.renderer.render(w, http.StatusOK, pageProduct, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		log.Error("failed to render", "err", err)
	}
}

// PostSelect applies an option click and redirects to the product page
// under the resulting selection. A rejected click keeps the selection.
func (h StorefrontHandler) PostSelect(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostSelect"
	log := slog.With("op", op)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		log.Warn("failed to parse form", "err", err)
		return
	}

	slug := r.PathValue("slug")
	sel := selectionFromValues(r.PostForm)
	option, value := r.PostForm.Get("option"), r.PostForm.Get("value")

	next, ok, err := h.sf.SelectOption(r.Context(), slug, sel, option, value)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to select option", http.StatusInternalServerError)
		log.Error("failed to select option", "err", err)
		return
	}
	if !ok {
		log.Debug("option value rejected", "slug", slug, "option", option, "value", value)
	}

	http.Redirect(w, r, productURL(slug, next), http.StatusSeeOther)
}

func (h StorefrontHandler) PostCart(w http.ResponseWriter, r *http.Request) {
	const op = "StorefrontHandler.PostCart"
	log := slog.With("op", op)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		log.Warn("failed to parse form", "err", err)
		return
	}

	slug := r.PostForm.Get("slug")
	sel := selectionFromValues(r.PostForm)
	id := ensureCartID(w, r)

	item, err := h.sf.AddToCart(r.Context(), id, slug, sel)
	if err != nil {
		writeCartErr(w, r, log, err)
		return
	}

	log.Info("added to cart", "cartID", id, "variantID", item.VariantID)
	http.Redirect(w, r, productURL(slug, sel), http.StatusSeeOther)
}

func (h StorefrontHandler) cartSize(r *http.Request) int {
	const op = "StorefrontHandler.cartSize"

	n, err := h.sf.CartSize(r.Context(), cartID(r))
	if err != nil {
		slog.Warn("cart size is unavailable", "op", op, "err", err)
		return 0
	}
	return n
}

func writeCartErr(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, err error,
) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		http.NotFound(w, r)
	case errors.Is(err, domain.ErrAddToCartDisabled):
		http.Error(w, "variant is not available", http.StatusConflict)
	default:
		http.Error(
			w, "failed to add to cart", http.StatusServiceUnavailable,
		)
		log.Error("failed to add to cart", "err", err)
	}
}
