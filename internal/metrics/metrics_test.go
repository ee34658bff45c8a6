package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistryCountsBusinessEvents(t *testing.T) {
	m := NewMetricsRegistry(prometheus.NewRegistry())

	m.ReservationCreated()
	m.ReservationCreated()
	m.NotificationFailed()
	m.ValidationFailed("flight")
	m.CascadeDeleted("reservation", 3)
	m.CascadeDeleted("reservation", 0)
	m.ObserveCache("FOA_", true)
	m.ObserveCache("FOA_", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsCreatedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsFailedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailuresTotal.WithLabelValues("flight")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CascadeDeletedTotal.WithLabelValues("reservation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("FOA_")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("FOA_")))
}

func TestNilRegistryIsSafe(t *testing.T) {
	var m *MetricsRegistry
	assert.NotPanics(t, func() {
		m.ReservationCreated()
		m.NotificationFailed()
		m.ValidationFailed("aircraft")
		m.ObserveQuery("list_flights", 0.01)
		m.ObserveCache("x", true)
		m.CascadeDeleted("flight", 1)
	})
}
