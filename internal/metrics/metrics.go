package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsAppended counts records added to the repository.
	NotificationsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web3hub_notifications_appended_total",
			Help: "Total number of notifications appended",
		},
		[]string{"type"},
	)

	// NotificationsDeleted counts delete requests that removed a record.
	NotificationsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "web3hub_notifications_deleted_total",
			Help: "Total number of notifications deleted",
		},
	)

	// PollerTicks counts background poller runs.
	PollerTicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web3hub_poller_ticks_total",
			Help: "Total number of poller ticks",
		},
		[]string{"status"}, // ok, error
	)

	// AlertsShown counts system alerts handed to the alert facility.
	AlertsShown = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web3hub_alerts_shown_total",
			Help: "Total number of system alerts requested",
		},
		[]string{"status"}, // shown, suppressed, failed
	)

	// StoreWriteFailures counts persistence writes that failed.
	StoreWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web3hub_store_write_failures_total",
			Help: "Total number of failed key-value writes",
		},
		[]string{"namespace"},
	)
)

// IncrementAppended records one appended notification of the given type.
func IncrementAppended(typ string) {
	NotificationsAppended.WithLabelValues(typ).Inc()
}

// IncrementPollerTick records one poller tick.
func IncrementPollerTick(status string) {
	PollerTicks.WithLabelValues(status).Inc()
}

// IncrementAlert records one alert outcome.
func IncrementAlert(status string) {
	AlertsShown.WithLabelValues(status).Inc()
}

// IncrementStoreWriteFailure records a failed write to namespace.
func IncrementStoreWriteFailure(namespace string) {
	StoreWriteFailures.WithLabelValues(namespace).Inc()
}
