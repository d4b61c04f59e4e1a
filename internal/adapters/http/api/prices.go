package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/catalog/internal/app"
	"github.com/okian/catalog/internal/domain/types"
	"github.com/okian/catalog/pkg/logger"
)

// PriceDependencies defines the dealer price queries.
type PriceDependencies interface {
	PriceAt(ctx context.Context, dealer, product string) (types.PriceQuote, error)
	AllPrices(ctx context.Context, product string) ([]types.PriceEntry, error)
}

// PricesHandler handles price lookups.
type PricesHandler struct {
	deps PriceDependencies
}

// NewPricesHandler creates a new prices handler.
func NewPricesHandler(deps PriceDependencies) *PricesHandler {
	return &PricesHandler{deps: deps}
}

// HandlePrice handles GET /price/{dealer}/{product} requests.
func (h *PricesHandler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	dealer, product := r.PathValue("dealer"), r.PathValue("product")
	quote, err := h.deps.PriceAt(r.Context(), dealer, product)
	switch {
	case errors.Is(err, service.ErrDealerNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Dealer not found"})
		return
	case err != nil:
		h.internalError(w, r, "price.at", err)
		return
	}
	if !quote.Available {
		writeJSON(w, http.StatusOK, messageResponse{
			Message: fmt.Sprintf("%s is not available with %s", product, dealer),
		})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s costs %s at %s", product, quote.Price, dealer),
	})
}

// HandleAllPrices handles GET /allprice/{product} requests.
func (h *PricesHandler) HandleAllPrices(w http.ResponseWriter, r *http.Request) {
	product := r.PathValue("product")
	prices, err := h.deps.AllPrices(r.Context(), product)
	if err != nil {
		h.internalError(w, r, "price.all", err)
		return
	}
	if len(prices) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("No dealers found for %s", product)})
		return
	}
	writeJSON(w, http.StatusOK, pricesResponse{Prices: prices})
}

func (h *PricesHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	err = WrapKind(op, ErrInternal, err)
	logger.Get().Error(r.Context(), "price query failed", logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, internalErrorResponse{Error: "Internal server error"})
}
