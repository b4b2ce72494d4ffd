// Package metrics 以 Prometheus 計數器記錄存在性查詢結果
package metrics

import (
	"log/slog"

	"github.com/jackyeh168/pinoydesk/src/internal/domain/membership"
	"github.com/jackyeh168/pinoydesk/src/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pinoydesk"

// ExistenceMetrics 實作 membership.ExistenceObserver
type ExistenceMetrics struct {
	registry *prometheus.Registry
	checks   *prometheus.CounterVec
	faults   *prometheus.CounterVec
}

var _ membership.ExistenceObserver = (*ExistenceMetrics)(nil)

// NewExistenceMetrics 建立計數器並註冊到獨立的 registry
func NewExistenceMetrics() *ExistenceMetrics {
	m := &ExistenceMetrics{
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "existence_checks_total",
			Help:      "Existence checks by check name and outcome.",
		}, []string{"check", "outcome"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "existence_faults_total",
			Help:      "Indeterminate existence checks by fault kind.",
		}, []string{"check", "fault"}),
	}
	m.registry.MustRegister(m.checks, m.faults)
	return m
}

// ObserveExistence 記錄一次查詢結果
func (m *ExistenceMetrics) ObserveExistence(check string, result shared.Existence) {
	m.checks.WithLabelValues(check, result.State().String()).Inc()
	if result.IsIndeterminate() {
		m.faults.WithLabelValues(check, string(result.Fault())).Inc()
	}
}

// Registry 返回 registry（供匯出或測試）
func (m *ExistenceMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// LogSummary 以日誌輸出目前的計數
func (m *ExistenceMetrics) LogSummary() {
	families, err := m.registry.Gather()
	if err != nil {
		slog.Warn("Failed to gather metrics", "error", err)
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			attrs := []any{"metric", family.GetName(), "value", metric.GetCounter().GetValue()}
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, label.GetName(), label.GetValue())
			}
			slog.Info("Metric", attrs...)
		}
	}
}
