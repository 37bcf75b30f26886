// Package telemetry provides the Prometheus metrics endpoint for the
// auto-import service.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for the import pipeline.
type Metrics struct {
	registry *prometheus.Registry

	ListingsCreated    prometheus.Counter
	ImagesAppended     prometheus.Counter
	GroupsSkipped      prometheus.Counter
	GroupsFailed       prometheus.Counter
	ConversionsTotal   prometheus.Counter
	ReconcilerMerges   prometheus.Counter
	ScanPassesTotal    prometheus.Counter
	ScanPassesDropped  prometheus.Counter
	FilesMarkedTotal   prometheus.Counter
}

// NewMetrics creates and registers the import pipeline metrics.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ListingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_listings_created_total",
			Help: "Number of new listings created by the auto-import pipeline",
		}),
		ImagesAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_images_appended_total",
			Help: "Number of images appended to existing listings",
		}),
		GroupsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_groups_skipped_total",
			Help: "Number of candidate groups skipped (already processed or below minimum size)",
		}),
		GroupsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_groups_failed_total",
			Help: "Number of candidate groups that failed persistence and were left for retry",
		}),
		ConversionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_heic_conversions_total",
			Help: "Number of successful HEIC to JPEG conversions",
		}),
		ReconcilerMerges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_reconciler_merges_total",
			Help: "Number of duplicate listings removed by the reconciler",
		}),
		ScanPassesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_scan_passes_total",
			Help: "Number of ingestion passes executed",
		}),
		ScanPassesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_scan_passes_dropped_total",
			Help: "Number of scan triggers dropped because a pass was already running",
		}),
		FilesMarkedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solerack_files_marked_processed_total",
			Help: "Number of source files marked processed in the ledger",
		}),
	}

	collectors := []prometheus.Collector{
		m.ListingsCreated, m.ImagesAppended, m.GroupsSkipped, m.GroupsFailed,
		m.ConversionsTotal, m.ReconcilerMerges, m.ScanPassesTotal,
		m.ScanPassesDropped, m.FilesMarkedTotal,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
