package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the calculator API
type Metrics struct {
	// Calculations by calculator and outcome ("ok", "invalid", "not_found")
	Calculations *prometheus.CounterVec

	// Engine time per calculator
	CalculationDuration *prometheus.HistogramVec

	SolverIterations  prometheus.Histogram
	SolverUnconverged prometheus.Counter
}

// NewMetrics registers the API metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "calcmymoney_calculations_total",
			Help: "Total calculator requests by calculator and outcome",
		}, []string{"calculator", "outcome"}),

		CalculationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calcmymoney_calculation_duration_seconds",
			Help:    "Duration of engine calls by calculator",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.1},
		}, []string{"calculator"}),

		SolverIterations: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "calcmymoney_solver_iterations",
			Help:    "Bisection iterations used by net-to-gross solves",
			Buckets: []float64{1, 5, 10, 20, 30, 40, 50},
		}),

		SolverUnconverged: factory.NewCounter(prometheus.CounterOpts{
			Name: "calcmymoney_solver_unconverged_total",
			Help: "Net-to-gross solves that ran out of iterations",
		}),
	}
}

// IncrementCalculation records a calculator outcome.
func (m *Metrics) IncrementCalculation(calculator, outcome string) {
	if m != nil {
		m.Calculations.WithLabelValues(calculator, outcome).Inc()
	}
}

// ObserveDuration records how long an engine call took.
func (m *Metrics) ObserveDuration(calculator string, d time.Duration) {
	if m != nil {
		m.CalculationDuration.WithLabelValues(calculator).Observe(d.Seconds())
	}
}

// ObserveSolve records iterations and convergence of one solve.
func (m *Metrics) ObserveSolve(iterations int, converged bool) {
	if m == nil {
		return
	}
	m.SolverIterations.Observe(float64(iterations))
	if !converged {
		m.SolverUnconverged.Inc()
	}
}
