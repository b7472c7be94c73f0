// Package metrics provides custom Prometheus metrics for the analysis core.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalysisMetrics contains all Prometheus metrics related to spectrum
// analysis operations.
type AnalysisMetrics struct {
	AnalysisTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	PeaksFound       prometheus.Histogram
	IsotopesReported prometheus.Histogram
	ChainDetections  *prometheus.CounterVec
	ROIAnalysisTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewAnalysisMetrics creates and registers the analysis metrics on the given
// registry.
func NewAnalysisMetrics(registry *prometheus.Registry) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{registry: registry}
	m.initMetrics()
	if err := m.register(); err != nil {
		return nil, fmt.Errorf("failed to register analysis metrics: %w", err)
	}
	return m, nil
}

func (m *AnalysisMetrics) initMetrics() {
	m.AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spectrum_analyses_total",
			Help: "Total number of spectrum analyses partitioned by settings profile.",
		},
		[]string{"profile"},
	)
	m.AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spectrum_analysis_duration_seconds",
			Help:    "Duration of full pipeline analyses.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"profile"},
	)
	m.PeaksFound = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spectrum_peaks_found",
			Help:    "Number of candidate peaks per analysis.",
			Buckets: prometheus.LinearBuckets(0, 5, 9),
		},
	)
	m.IsotopesReported = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spectrum_isotopes_reported",
			Help:    "Number of isotope matches surviving threshold filtering.",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		},
	)
	m.ChainDetections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spectrum_chain_detections_total",
			Help: "Decay chain detections partitioned by chain and confidence level.",
		},
		[]string{"chain", "level"},
	)
	m.ROIAnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spectrum_roi_analyses_total",
			Help: "ROI analyses partitioned by isotope and detection outcome.",
		},
		[]string{"isotope", "detected"},
	)
}

func (m *AnalysisMetrics) register() error {
	collectors := []prometheus.Collector{
		m.AnalysisTotal,
		m.AnalysisDuration,
		m.PeaksFound,
		m.IsotopesReported,
		m.ChainDetections,
		m.ROIAnalysisTotal,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordAnalysis records one completed pipeline run.
func (m *AnalysisMetrics) RecordAnalysis(profile string, durationSeconds float64, peaks, isotopes int) {
	if m == nil {
		return
	}
	m.AnalysisTotal.WithLabelValues(profile).Inc()
	m.AnalysisDuration.WithLabelValues(profile).Observe(durationSeconds)
	m.PeaksFound.Observe(float64(peaks))
	m.IsotopesReported.Observe(float64(isotopes))
}

// RecordChain records one reported decay chain detection.
func (m *AnalysisMetrics) RecordChain(chain, level string) {
	if m == nil {
		return
	}
	m.ChainDetections.WithLabelValues(chain, level).Inc()
}

// RecordROI records one ROI analysis outcome.
func (m *AnalysisMetrics) RecordROI(isotope string, detected bool) {
	if m == nil {
		return
	}
	label := "false"
	if detected {
		label = "true"
	}
	m.ROIAnalysisTotal.WithLabelValues(isotope, label).Inc()
}
