package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/numeric"
	"github.com/iho/opencap/internal/usecase"
)

// Metrics holds all Prometheus metrics and implements
// usecase.MetricsRecorder.
type Metrics struct {
	// Chain metrics
	ChainsStarted      prometheus.Counter
	RoundsAppended     prometheus.Counter
	RoundsRemoved      prometheus.Counter
	RoundsRecalculated prometheus.Counter
	ChainsCleared      prometheus.Counter
	OperationErrors    *prometheus.CounterVec

	// Summary metrics
	Summaries       *prometheus.CounterVec
	SummaryDuration *prometheus.HistogramVec
}

var _ usecase.MetricsRecorder = (*Metrics)(nil)

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ChainsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "opencap_chains_started_total",
			Help: "Total number of round chains started",
		}),
		RoundsAppended: factory.NewCounter(prometheus.CounterOpts{
			Name: "opencap_rounds_appended_total",
			Help: "Total number of rounds appended",
		}),
		RoundsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "opencap_rounds_removed_total",
			Help: "Total number of rounds removed",
		}),
		RoundsRecalculated: factory.NewCounter(prometheus.CounterOpts{
			Name: "opencap_rounds_recalculated_total",
			Help: "Total number of rounds recomputed after a removal",
		}),
		ChainsCleared: factory.NewCounter(prometheus.CounterOpts{
			Name: "opencap_chains_cleared_total",
			Help: "Total number of chains emptied by removing their last round",
		}),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opencap_operation_errors_total",
				Help: "Total chain operation errors by operation and type",
			},
			[]string{"operation", "error_type"},
		),

		Summaries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opencap_summaries_total",
				Help: "Total summaries served by outcome",
			},
			[]string{"outcome"},
		),
		SummaryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "opencap_summary_duration_seconds",
				Help:    "Time taken to serve a summary",
				Buckets: []float64{0.005, 0.05, 0.25, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) ChainStarted() { m.ChainsStarted.Inc() }

func (m *Metrics) RoundAppended() { m.RoundsAppended.Inc() }

func (m *Metrics) RoundRemoved(recalculated int) {
	m.RoundsRemoved.Inc()
	m.RoundsRecalculated.Add(float64(recalculated))
}

func (m *Metrics) ChainCleared() { m.ChainsCleared.Inc() }

func (m *Metrics) OperationFailed(operation string, err error) {
	m.OperationErrors.WithLabelValues(operation, errorType(err)).Inc()
}

func (m *Metrics) SummaryServed(outcome usecase.SummaryOutcome, elapsed time.Duration) {
	m.Summaries.WithLabelValues(string(outcome)).Inc()
	m.SummaryDuration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}

// errorType buckets err into a low-cardinality label.
func errorType(err error) string {
	switch {
	case errors.Is(err, numeric.ErrNotANumber):
		return "not_a_number"
	case errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrOwnershipOutOfRange),
		errors.Is(err, domain.ErrEquityOutOfRange),
		errors.Is(err, domain.ErrInvalidRoundName),
		errors.Is(err, domain.ErrInvalidRole):
		return "validation"
	case errors.Is(err, domain.ErrZeroPostMoney), errors.Is(err, domain.ErrNonPositivePostMoney):
		return "post_money"
	case errors.Is(err, domain.ErrChainEmpty), errors.Is(err, domain.ErrChainExists):
		return "chain_state"
	case errors.Is(err, domain.ErrRoundNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
