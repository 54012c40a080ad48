package payment

import "time"

// MetricsCollector defines the interface for collecting payment metrics
type MetricsCollector interface {
	RecordInitiation(method, provider string)
	RecordOutcome(method, provider, result string)
	RecordProviderLatency(provider string, duration time.Duration)
	RecordStatusCheck(method, provider string)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordInitiation(string, string)             {}
func (n *NoopMetricsCollector) RecordOutcome(string, string, string)        {}
func (n *NoopMetricsCollector) RecordProviderLatency(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordStatusCheck(string, string)            {}
func (n *NoopMetricsCollector) RecordError(string, string)                  {}
