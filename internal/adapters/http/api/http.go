// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/catalog/internal/domain/types"
	"github.com/okian/catalog/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ProductDependencies
	PriceDependencies
	HealthDependencies
	StatsProvider
}

// Server wires HTTP routes for the catalog API.
type Server struct {
	productsHandler *ProductsHandler
	dealersHandler  *DealersHandler
	pricesHandler   *PricesHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		productsHandler: NewProductsHandler(deps),
		dealersHandler:  NewDealersHandler(deps),
		pricesHandler:   NewPricesHandler(deps),
		healthHandler:   NewHealthHandler(deps),
		statsHandler:    NewStatsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. Patterns carry the method, so
// any other method on a known path gets 405 from the mux itself.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /products", MetricsMiddleware(s.productsHandler.HandleListProducts, "products"))
	mux.HandleFunc("GET /getdealers/{product}", MetricsMiddleware(s.dealersHandler.HandleGetDealers, "getdealers"))
	mux.HandleFunc("GET /price/{dealer}/{product}", MetricsMiddleware(s.pricesHandler.HandlePrice, "price"))
	mux.HandleFunc("GET /allprice/{product}", MetricsMiddleware(s.pricesHandler.HandleAllPrices, "allprice"))
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// internalErrorResponse is the body used by the price routes on store failure.
type internalErrorResponse struct {
	Error string `json:"error"`
}

type productsResponse struct {
	Products []types.ProductDealers `json:"products"`
}

type dealersResponse struct {
	Dealers []string `json:"dealers"`
}

type pricesResponse struct {
	Prices []types.PriceEntry `json:"prices"`
}

// writeJSON encodes v without HTML escaping so path segments echoed in
// messages come back exactly as received.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"code":"internal_error","message":"encoding response failed"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
