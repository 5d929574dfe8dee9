package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/niksmo/zeroproof/internal/core/domain"
)

// GET /v1/products?q=term (200 OK)
// GET /v1/products/{slug}?opt.<Name>=<Value> (200 OK, 404 Not found)
// POST /v1/cart JSON {"cart_id", "slug", "selection"} (202 Accepted, 400 Bad request, 404 Not found, 409 Conflict)

type APIHandler struct {
	sf Storefront
}

func RegisterAPI(mux *http.ServeMux, sf Storefront) {
	h := APIHandler{sf}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProduct)
	mux.Handle("POST /v1/cart", AllowJSON(http.HandlerFunc(h.PostCart)))
	mux.HandleFunc("GET /healthz", Healthz)
}

func (h APIHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "APIHandler.GetProducts"
	log := slog.With("op", op)

	vs, loading, err := h.sf.Products(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		log.Error("failed to list products", "err", err)
		return
	}

	res := ProductList{Loading: loading, Products: make([]Product, len(vs))}
	for i, v := range vs {
		res.Products[i] = toProduct(v)
	}
	writeJSON(w, log, http.StatusOK, res)
}

func (h APIHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "APIHandler.GetProduct"
	log := slog.With("op", op)

	sel := selectionFromValues(r.URL.Query())
	v, err := h.sf.ProductPage(r.Context(), r.PathValue("slug"), sel)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to read product", http.StatusInternalServerError)
		log.Error("failed to read product", "err", err)
		return
	}
	writeJSON(w, log, http.StatusOK, toProduct(v))
}

func (h APIHandler) PostCart(w http.ResponseWriter, r *http.Request) {
	const op = "APIHandler.PostCart"
	log := slog.With("op", op)

	var req CartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.Slug == "" {
		http.Error(w, "slug is required", http.StatusBadRequest)
		return
	}

	id := req.CartID
	if id == "" {
		id = ensureCartID(w, r)
	} else if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "invalid cart id", http.StatusBadRequest)
		return
	}

	item, err := h.sf.AddToCart(r.Context(), id, req.Slug, req.Selection)
	if err != nil {
		writeCartErr(w, r, log, err)
		return
	}

	log.Info("accepted", "cartID", id, "variantID", item.VariantID)
	writeJSON(w, log, http.StatusAccepted, toCartItem(item))
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
