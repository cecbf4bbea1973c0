package driven

// MetricsRecorder counts request and count-fetch outcomes.
type MetricsRecorder interface {
	// ObserveRequest records one backend call.
	ObserveRequest(operation string, err error)

	// CountFetchFailed records a degraded per-service count.
	CountFetchFailed(serviceName string)
}
