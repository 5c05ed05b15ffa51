package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/taxyear"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request bodies; every calculator input is tiny
const maxBodyBytes = 64 << 10

// Server is the JSON API over the calculation engine
type Server struct {
	years    *taxyear.Registry
	logger   *logrus.Logger
	metrics  *Metrics
	gatherer prometheus.Gatherer
}

// New creates a Server. Metrics are registered on reg, which also backs
// /metrics; a nil reg disables both.
func New(years *taxyear.Registry, logger *logrus.Logger, reg *prometheus.Registry) *Server {
	s := &Server{years: years, logger: logger}
	if logger == nil {
		s.logger = logrus.New()
	}
	if reg != nil {
		s.metrics = NewMetrics(reg)
		s.gatherer = reg
	}
	return s
}

// Router wires all endpoints
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/tax-years", s.handleTaxYears)
		r.Post("/salary", s.handleSalary)
		r.Post("/salary/gross-from-net", s.handleGrossFromNet)
		r.Post("/dividend-tax", s.handleDividendTax)
		r.Post("/corporation-tax", s.handleCorporationTax)
		r.Post("/stamp-duty", s.handleStampDuty)
		r.Post("/maternity-pay", s.handleMaternityPay)
		r.Post("/mortgage", s.handleMortgage)
		r.Post("/ir35", s.handleIR35)
		r.Post("/brrrr", s.handleBRRRR)
	})
	return r
}

// NewHTTPServer builds an HTTP server with sane defaults for this project.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// engineFor resolves ?tax_year= (default year when absent) into an engine
func (s *Server) engineFor(r *http.Request) (*calculation.CalculationEngine, error) {
	cfg, err := s.years.Lookup(r.URL.Query().Get("tax_year"))
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngine(cfg)
	engine.SetLogger(s.logger)
	engine.Debug = s.logger.IsLevelEnabled(logrus.DebugLevel)
	return engine, nil
}

func (s *Server) taxYear(r *http.Request) (*domain.TaxYearConfig, error) {
	return s.years.Lookup(r.URL.Query().Get("tax_year"))
}

// decode reads a JSON body, rejecting unknown fields
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	if errors.Is(err, taxyear.ErrUnknownTaxYear) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func outcomeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "invalid"
	}
	return "error"
}

// fail writes an error reply and counts the outcome
func (s *Server) fail(w http.ResponseWriter, r *http.Request, calculator string, err error) {
	status := statusFor(err)
	s.metrics.IncrementCalculation(calculator, outcomeFor(status))
	s.logger.WithFields(logrus.Fields{
		"calculator": calculator,
		"request_id": middleware.GetReqID(r.Context()),
	}).WithError(err).Warn("calculation rejected")
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// succeed writes a 200 reply and records timing
func (s *Server) succeed(w http.ResponseWriter, calculator string, started time.Time, v interface{}) {
	s.metrics.ObserveDuration(calculator, time.Since(started))
	s.metrics.IncrementCalculation(calculator, "ok")
	writeJSON(w, http.StatusOK, v)
}
