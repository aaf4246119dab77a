// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the resolution pipeline.
// Tracks outcomes per error kind and the duration of each stage.
type Metrics struct {
	Resolutions   *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
}

// NewMetrics registers the pipeline metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civicreport_resolutions_total",
			Help: "Total number of authority resolutions by outcome",
		}, []string{"outcome"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civicreport_stage_duration_seconds",
			Help:    "Duration of each pipeline stage (geocode, model)",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
	}
}

// ObserveOutcome records the outcome of a resolution; err nil means success.
func (m *Metrics) ObserveOutcome(err error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}

	m.Resolutions.WithLabelValues(outcome).Inc()
}

// ObserveStage records the duration of a stage.
// Call with time.Now() at the start of the stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}

	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
