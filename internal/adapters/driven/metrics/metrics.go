// Package metrics records backend call outcomes and degraded directory
// counts with Prometheus collectors on a private registry.
package metrics

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.MetricsRecorder = (*Recorder)(nil)

const (
	outcomeOK = "ok"

	requestsName      = "karigar_api_requests_total"
	countFailuresName = "karigar_directory_count_failures_total"
)

// Recorder implements driven.MetricsRecorder.
type Recorder struct {
	registry *prometheus.Registry

	// Requests counts backend calls by operation and outcome.
	Requests *prometheus.CounterVec

	// CountFailures counts per-service count fetches that fell back to zero.
	CountFailures *prometheus.CounterVec
}

// New creates a recorder with its own registry, so repeated construction in
// tests never collides with the global default registerer.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: requestsName,
			Help: "Backend API calls by operation and outcome",
		}, []string{"operation", "outcome"}), // outcome: "ok", "validation", "network", "authorization", "unknown"

		CountFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: countFailuresName,
			Help: "Per-service professional count fetches that degraded to zero",
		}, []string{"service"}),
	}
}

// Registry exposes the private registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRequest records one backend call.
func (r *Recorder) ObserveRequest(operation string, err error) {
	if r == nil {
		return
	}
	r.Requests.WithLabelValues(operation, outcome(err)).Inc()
}

// CountFetchFailed records a degraded per-service count.
func (r *Recorder) CountFetchFailed(serviceName string) {
	if r == nil {
		return
	}
	r.CountFailures.WithLabelValues(serviceName).Inc()
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	return string(domain.Classify(err))
}

// Summary renders every non-zero series as "name{labels} value" lines,
// sorted for stable output. Used for the verbose exit report.
func (r *Recorder) Summary() ([]string, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), formatLabels(m.GetLabel()), v))
		}
	}
	sort.Strings(lines)
	return lines, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	out := ""
	for i, p := range pairs {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%s=%q", p.GetName(), p.GetValue())
	}
	return out
}
