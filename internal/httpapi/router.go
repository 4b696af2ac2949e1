// Package httpapi wires the HTTP surface of the reporting service.
// It keeps handlers thin, delegating report computation to the service
// layer.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hospfin/ledger/internal/service/report"
)

// Server wires handlers and middleware using Chi.
type Server struct {
	reports  report.Service
	src      report.Source
	currency string
	ready    func(context.Context) error
	log      *slog.Logger
	rt       *chi.Mux
}

// New constructs the HTTP server with routes and middleware. src is used by
// the endpoints that expose the stock and due calculators directly; the
// three reports go through the report service. ready reports whether the
// backing store is reachable; nil means always ready.
func New(reports report.Service, src report.Source, currency string, ready func(context.Context) error, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s := &Server{
		reports:  reports,
		src:      src,
		currency: currency,
		ready:    ready,
		log:      logger,
		rt:       r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches per-route
// validation middleware.
func (s *Server) routes() {
	s.rt.With(s.validateAsOnQuery()).Get("/v1/reports/balance-sheet", s.getBalanceSheet)
	s.rt.With(s.validateRangeQuery()).Get("/v1/reports/income-expenditure", s.getIncomeExpenditure)
	s.rt.With(s.validateRangeQuery()).Get("/v1/reports/receipt-payment", s.getReceiptPayment)
	s.rt.With(s.validateRangeQuery()).Get("/v1/stock/{line}", s.getStockLine)
	s.rt.With(s.validateAsOnQuery()).Get("/v1/dues/vendors", s.getVendorDues)
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Get("/metrics", metricsHandler().ServeHTTP)
}
