package api

import (
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/catalog/internal/app"
	"github.com/okian/catalog/pkg/logger"
)

// DealersHandler handles dealer lookups for a single product.
type DealersHandler struct {
	deps ProductDependencies
}

// NewDealersHandler creates a new dealers handler.
func NewDealersHandler(deps ProductDependencies) *DealersHandler {
	return &DealersHandler{deps: deps}
}

// HandleGetDealers handles GET /getdealers/{product} requests.
func (h *DealersHandler) HandleGetDealers(w http.ResponseWriter, r *http.Request) {
	product := r.PathValue("product")
	dealers, err := h.deps.GetDealers(r.Context(), product)
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{
			Message: fmt.Sprintf("Could not find dealers for %s", product),
		})
		return
	case err != nil:
		err = WrapKind("dealers.get", ErrInternal, err)
		logger.Get().Error(r.Context(), "dealer lookup failed", logger.String("product", product), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrInternal)
		return
	}
	if dealers == nil {
		dealers = []string{}
	}
	writeJSON(w, http.StatusOK, dealersResponse{Dealers: dealers})
}
