package future

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ambient observability for the future/promise machinery. promauto
// registers everything against the default registry at package init, so
// no caller registration is required and every counter is safe for
// concurrent use.
var (
	futuresCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "future",
		Name:      "futures_created_total",
		Help:      "Total number of Future/Promise values constructed.",
	})

	futuresTerminalTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "future",
		Name:      "futures_terminal_total",
		Help:      "Total number of futures reaching a terminal state, by state.",
	}, []string{"state"})

	unhandledFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "future",
		Name:      "unhandled_failures_total",
		Help:      "Total number of futures that failed without anyone observing the exception.",
	})

	callbackDispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "future",
		Name:      "callback_dispatch_total",
		Help:      "Total number of done-callbacks dispatched, by executor kind.",
	}, []string{"executor"})

	combinatorFanout = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "future",
		Name:      "combinator_fanout_size",
		Help:      "Number of input futures passed to a fan-in combinator (Gather/First/FirstSuccessful).",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)

func metricsFutureCreated() {
	futuresCreatedTotal.Inc()
}

func metricsFutureTerminal(s state) {
	futuresTerminalTotal.WithLabelValues(s.String()).Inc()
}

func metricsCallbackDispatch(executorKind string) {
	callbackDispatchTotal.WithLabelValues(executorKind).Inc()
}

func metricsUnhandledFailure() {
	unhandledFailuresTotal.Inc()
}

func metricsCombinatorFanout(n int) {
	combinatorFanout.Observe(float64(n))
}
