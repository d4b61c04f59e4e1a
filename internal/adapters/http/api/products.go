package api

import (
	"context"
	"net/http"

	"github.com/okian/catalog/internal/domain/types"
	"github.com/okian/catalog/pkg/logger"
)

// ProductDependencies defines the read operations over products.
type ProductDependencies interface {
	ListProducts(ctx context.Context) ([]types.ProductDealers, error)
	GetDealers(ctx context.Context, product string) ([]string, error)
}

// ProductsHandler handles the product listing.
type ProductsHandler struct {
	deps ProductDependencies
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(deps ProductDependencies) *ProductsHandler {
	return &ProductsHandler{deps: deps}
}

// HandleListProducts handles GET /products requests.
func (h *ProductsHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.deps.ListProducts(r.Context())
	if err != nil {
		err = Wrap("products.list", err)
		logger.Get().Error(r.Context(), "listing products failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrInternal)
		return
	}
	if products == nil {
		products = []types.ProductDealers{}
	}
	writeJSON(w, http.StatusOK, productsResponse{Products: products})
}
