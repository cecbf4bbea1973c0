package services

import "github.com/custodia-labs/karigar-cli/internal/core/ports/driven"

// nopMetrics discards every observation.
type nopMetrics struct{}

func (nopMetrics) ObserveRequest(string, error) {}
func (nopMetrics) CountFetchFailed(string)      {}

func metricsOrNop(m driven.MetricsRecorder) driven.MetricsRecorder {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
