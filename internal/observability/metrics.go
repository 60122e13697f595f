package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	snapshotRefreshGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "studylog",
		Subsystem: "view",
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the most recent wholesale snapshot refresh.",
	})
	snapshotSizeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "studylog",
		Subsystem: "view",
		Name:      "snapshot_records",
		Help:      "Number of activity records in the current snapshot.",
	})
	listingQueryCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studylog",
		Subsystem: "api",
		Name:      "listing_queries_total",
		Help:      "Listing queries served, labeled by engine variant.",
	}, []string{"variant"})
	activityCreatedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "studylog",
		Subsystem: "persistence",
		Name:      "last_activity_created_timestamp_seconds",
		Help:      "Unix timestamp of the most recent activity persisted.",
	})
)

func init() {
	prometheus.MustRegister(snapshotRefreshGauge, snapshotSizeGauge, listingQueryCounter, activityCreatedGauge)
}

// RecordSnapshotRefreshed updates the refresh watermark and size gauges.
func RecordSnapshotRefreshed(ts time.Time, size int) {
	if ts.IsZero() {
		return
	}
	snapshotRefreshGauge.Set(float64(ts.Unix()))
	snapshotSizeGauge.Set(float64(size))
}

// RecordListingQuery counts one served listing query.
func RecordListingQuery(variant string) {
	listingQueryCounter.WithLabelValues(variant).Inc()
}

// RecordActivityCreated updates the persistence watermark gauge.
func RecordActivityCreated(ts time.Time) {
	if ts.IsZero() {
		return
	}
	activityCreatedGauge.Set(float64(ts.Unix()))
}
