// Package metrics prometheus instrumentation of the ledger
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OperationsTotal ledger operations by action and result code
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lending_operations_total",
		Help: "Ledger operations by action and result",
	}, []string{"action", "result"})

	// OperationLatency ledger operation latency in seconds
	OperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lending_operation_latency_seconds",
		Help:    "Ledger operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})

	// PoolTotals pool totals in asset units
	PoolTotals = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lending_pool_totals",
		Help: "Pool deposit and borrow totals",
	}, []string{"asset", "side"})

	// TransferFailures custody deliveries that failed
	TransferFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lending_transfer_failures_total",
		Help: "Custody transfer delivery failures",
	}, []string{"direction"})

	// PendingTransfers outbox rows waiting for delivery
	PendingTransfers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lending_pending_transfers",
		Help: "Custody transfers waiting for delivery",
	})

	// LiquidatablePositions borrowers with health factor below one at last scan
	LiquidatablePositions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lending_liquidatable_positions",
		Help: "Borrowers eligible for liquidation at last scan",
	})
)

// Handler returns the prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePool exports the totals of a pool
func ObservePool(assetID string, deposits, borrows uint64) {
	PoolTotals.WithLabelValues(assetID, "deposits").Set(float64(deposits))
	PoolTotals.WithLabelValues(assetID, "borrows").Set(float64(borrows))
}
