// Package metrics exposes Prometheus instrumentation for the farm core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eelfarm",
		Name:      "operations_total",
		Help:      "Event applier executions by operation and outcome.",
	}, []string{"operation", "outcome"})

	stockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eelfarm",
		Name:      "stock_rejections_total",
		Help:      "Reserve attempts rejected because stock would go negative.",
	})

	alertsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eelfarm",
		Name:      "alerts_sent_total",
		Help:      "Inventory alerts delivered to the webhook.",
	})
)

// ObserveOperation records one applier execution.
func ObserveOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	operationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveStockRejection records an insufficient-stock rejection.
func ObserveStockRejection() { stockRejections.Inc() }

// ObserveAlertSent records a delivered inventory alert.
func ObserveAlertSent() { alertsSent.Inc() }
