package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records counters for the payment webhook pipeline.
type PipelineMetrics struct {
	events         *prometheus.CounterVec
	ordersRecorded prometheus.Counter
	decrements     prometheus.Counter
	misses         prometheus.Counter
	lowStockAlerts prometheus.Counter
}

// NewPipelineMetrics registers the pipeline metrics on the provided registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Webhook deliveries received, labeled by event type.",
	}, []string{"type"})
	ordersRecorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_recorded_total",
		Help: "Orders persisted from paid events.",
	})
	decrements := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_decrements_total",
		Help: "Catalog rows decremented for confirmed sales.",
	})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_misses_total",
		Help: "Purchased line items with no matching catalog row.",
	})
	lowStockAlerts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "low_stock_alerts_total",
		Help: "Low-stock alerts attempted after a sale.",
	})
	reg.MustRegister(events, ordersRecorded, decrements, misses, lowStockAlerts)
	return &PipelineMetrics{
		events:         events,
		ordersRecorded: ordersRecorded,
		decrements:     decrements,
		misses:         misses,
		lowStockAlerts: lowStockAlerts,
	}
}

// IncEvent counts one webhook delivery of the given event type.
func (m *PipelineMetrics) IncEvent(eventType string) {
	if m == nil || m.events == nil {
		return
	}
	if eventType == "" {
		eventType = "unknown"
	}
	m.events.WithLabelValues(eventType).Inc()
}

// IncOrderRecorded counts one persisted order.
func (m *PipelineMetrics) IncOrderRecorded() {
	if m == nil || m.ordersRecorded == nil {
		return
	}
	m.ordersRecorded.Inc()
}

// IncDecrement counts one successful inventory decrement.
func (m *PipelineMetrics) IncDecrement() {
	if m == nil || m.decrements == nil {
		return
	}
	m.decrements.Inc()
}

// IncMiss counts one line item that matched no catalog row.
func (m *PipelineMetrics) IncMiss() {
	if m == nil || m.misses == nil {
		return
	}
	m.misses.Inc()
}

// IncLowStockAlert counts one attempted low-stock notification.
func (m *PipelineMetrics) IncLowStockAlert() {
	if m == nil || m.lowStockAlerts == nil {
		return
	}
	m.lowStockAlerts.Inc()
}
