package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CustomerCreated()
	m.CustomerCreated()
	m.OrderPlaced()
	m.DeliveriesShipped(3)
	m.DeliveriesShipped(0)
	m.CommandRejected("create_customer")
	m.OutboxEvent("customer.welcome_email", "published")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.customersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersPlaced))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.deliveriesShipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandsRejected.WithLabelValues("create_customer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outboxPublished.WithLabelValues("customer.welcome_email", "published")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CustomerCreated()
		m.OrderPlaced()
		m.DeliveriesShipped(1)
		m.CommandRejected("x")
		m.OutboxEvent("x", "failed")
	})
}
