// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes Prometheus counters for engine operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "filepane"

// 📈 Metrics holds the collectors of one engine. Each engine registers its
// own set so several can live in one process.
type Metrics struct {
	operations    *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	batchItems    *prometheus.CounterVec
	batchBytes    *prometheus.CounterVec
	confirmations *prometheus.CounterVec
	trashItems    prometheus.Gauge
	undo          *prometheus.CounterVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Commands executed, by kind and result",
			},
			[]string{"kind", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Time spent executing a command",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		batchItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_items_total",
				Help:      "Batch copy/move items, by operation and result",
			},
			[]string{"operation", "result"},
		),
		batchBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_bytes_total",
				Help:      "Bytes transferred by batch operations",
			},
			[]string{"operation"},
		),
		confirmations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "confirmations_total",
				Help:      "Confirmation gate outcomes",
			},
			[]string{"outcome"},
		),
		trashItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "trash_items",
				Help:      "Entries currently restorable from trash",
			},
		),
		undo: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_steps_total",
				Help:      "Undo and redo steps, by direction and result",
			},
			[]string{"direction", "result"},
		),
	}
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordOperation records one executed command
func (m *Metrics) RecordOperation(kind string, took time.Duration, ok bool) {
	m.operations.WithLabelValues(kind, result(ok)).Inc()
	m.duration.WithLabelValues(kind).Observe(took.Seconds())
}

// RecordBatch records the tally of a batch copy or move
func (m *Metrics) RecordBatch(operation string, successful, failed int, bytes uint64) {
	m.batchItems.WithLabelValues(operation, "success").Add(float64(successful))
	m.batchItems.WithLabelValues(operation, "failure").Add(float64(failed))
	m.batchBytes.WithLabelValues(operation).Add(float64(bytes))
}

// RecordConfirmation records a gate outcome such as requested, confirmed,
// cancelled or rejected
func (m *Metrics) RecordConfirmation(outcome string) {
	m.confirmations.WithLabelValues(outcome).Inc()
}

// SetTrashItems sets the number of restorable entries
func (m *Metrics) SetTrashItems(n int) {
	m.trashItems.Set(float64(n))
}

// RecordHistoryStep records an undo or redo attempt
func (m *Metrics) RecordHistoryStep(direction string, ok bool) {
	m.undo.WithLabelValues(direction, result(ok)).Inc()
}
