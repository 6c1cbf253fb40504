package main

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"sonicbridge/library"
)

var (
	scansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sonicbridge_library_scans_total",
			Help: "Total number of library scans by outcome",
		},
		[]string{"outcome"},
	)

	scanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sonicbridge_library_scan_duration_seconds",
			Help:    "Duration of completed library scans in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		},
	)

	catalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sonicbridge_catalog_items",
			Help: "Number of catalog items by kind after the last scan",
		},
		[]string{"kind"},
	)
)

func recordScan(stats library.ScanStats, err error) {
	switch {
	case errors.Is(err, library.ErrScanInProgress):
		scansTotal.WithLabelValues("skipped").Inc()
		return
	case err != nil:
		scansTotal.WithLabelValues("failed").Inc()
		return
	}
	scansTotal.WithLabelValues("ok").Inc()
	scanDuration.Observe(stats.Duration.Seconds())
	catalogItems.WithLabelValues("folder").Set(float64(stats.Folders))
	catalogItems.WithLabelValues("artist").Set(float64(stats.Artists))
	catalogItems.WithLabelValues("album").Set(float64(stats.Albums))
	catalogItems.WithLabelValues("song").Set(float64(stats.Songs))
}
