// Package metrics holds the prometheus collectors for stock movements.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	movements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_total",
		Help: "Number of recorded stock movements by operation.",
	}, []string{"operation"})

	movedQuantity = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_moved_quantity_total",
		Help: "Sum of quantities moved by operation.",
	}, []string{"operation"})

	rejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_operations_rejected_total",
		Help: "Operations refused by the inventory service by reason.",
	}, []string{"reason"})

	registered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stock_records",
		Help: "Number of records in the inventory table after the last write.",
	})
)

func ObserveMovement(operation string, quantity int) {
	movements.WithLabelValues(operation).Inc()
	movedQuantity.WithLabelValues(operation).Add(float64(quantity))
}

func ObserveRejected(reason string) {
	rejected.WithLabelValues(reason).Inc()
}

func SetRecordCount(n int) {
	registered.Set(float64(n))
}
