/*
Package metrics exposes the business counters of the store as Prometheus
collectors. A nil *Metrics is valid and records nothing, so handlers can be
built without it in tests.
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store"

type Metrics struct {
	customersCreated  prometheus.Counter
	ordersPlaced      prometheus.Counter
	deliveriesShipped prometheus.Counter
	commandsRejected  *prometheus.CounterVec
	outboxPublished   *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests
// to avoid duplicate registration on the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		customersCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "customers_created_total",
			Help:      "Customers persisted by the create command.",
		}),
		ordersPlaced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders placed and persisted.",
		}),
		deliveriesShipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_shipped_total",
			Help:      "Deliveries created by shipping orders.",
		}),
		commandsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_rejected_total",
			Help:      "Commands that returned notifications instead of persisting.",
		}, []string{"command"}),
		outboxPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_total",
			Help:      "Outbox events handled by the worker, by result.",
		}, []string{"event", "result"}),
	}
}

func (m *Metrics) CustomerCreated() {
	if m != nil {
		m.customersCreated.Inc()
	}
}

func (m *Metrics) OrderPlaced() {
	if m != nil {
		m.ordersPlaced.Inc()
	}
}

func (m *Metrics) DeliveriesShipped(n int) {
	if m != nil && n > 0 {
		m.deliveriesShipped.Add(float64(n))
	}
}

func (m *Metrics) CommandRejected(command string) {
	if m != nil {
		m.commandsRejected.WithLabelValues(command).Inc()
	}
}

// OutboxEvent counts one worker attempt; result is "published", "retry" or "failed".
func (m *Metrics) OutboxEvent(event, result string) {
	if m != nil {
		m.outboxPublished.WithLabelValues(event, result).Inc()
	}
}
