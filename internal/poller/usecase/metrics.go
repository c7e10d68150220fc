package usecase

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK    = "ok"
	resultError = "error"
	resultStale = "stale"
)

type metrics struct {
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	newTotal      prometheus.Counter
	unread        prometheus.Gauge
	snapshotSize  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, userID int64) *metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"user_id": strconv.FormatInt(userID, 10)}

	return &metrics{
		fetches: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "panel_fetches_total",
			Help:        "Snapshot fetches by result.",
			ConstLabels: labels,
		}, []string{"trigger", "result"}),
		fetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:        "panel_fetch_duration_seconds",
			Help:        "Duration of snapshot fetches.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}),
		newTotal: f.NewCounter(prometheus.CounterOpts{
			Name:        "panel_new_notifications_total",
			Help:        "Notifications detected as new.",
			ConstLabels: labels,
		}),
		unread: f.NewGauge(prometheus.GaugeOpts{
			Name:        "panel_unread",
			Help:        "Current unread count.",
			ConstLabels: labels,
		}),
		snapshotSize: f.NewGauge(prometheus.GaugeOpts{
			Name:        "panel_snapshot_size",
			Help:        "Length of the last applied snapshot.",
			ConstLabels: labels,
		}),
	}
}
