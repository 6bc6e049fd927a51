package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/rareships-go/internal/domain/settlement"
)

const (
	// Namespace for all metrics
	namespace = "rareships"
	// Subsystem for settlement engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSettlementCollector is set by SetGlobalSettlementCollector when metrics are enabled
	globalSettlementCollector SettlementMetricsRecorder
)

// SettlementMetricsRecorder records what settlements did.
// Application handlers call the package-level Record* helpers, which no-op
// until a recorder is installed.
type SettlementMetricsRecorder interface {
	RecordOutcome(operation string, outcome *settlement.Outcome)
	RecordFailure(operation string, err error)
	RecordFleetSweep(settled, failed int, durationSeconds float64)
	RecordEvent(eventType string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry, nil if metrics are disabled
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSettlementCollector installs the recorder behind the Record* helpers.
// Passing nil disables recording again.
func SetGlobalSettlementCollector(collector SettlementMetricsRecorder) {
	globalSettlementCollector = collector
}

// RecordSettlementOutcome records a successful settlement globally
func RecordSettlementOutcome(operation string, outcome *settlement.Outcome) {
	if globalSettlementCollector != nil && outcome != nil {
		globalSettlementCollector.RecordOutcome(operation, outcome)
	}
}

// RecordSettlementFailure records a failed settlement globally
func RecordSettlementFailure(operation string, err error) {
	if globalSettlementCollector != nil {
		globalSettlementCollector.RecordFailure(operation, err)
	}
}

// RecordFleetSweep records one pass of the fleet sweep globally
func RecordFleetSweep(settled, failed int, durationSeconds float64) {
	if globalSettlementCollector != nil {
		globalSettlementCollector.RecordFleetSweep(settled, failed, durationSeconds)
	}
}

// RecordEvent counts an event seen on the event bus
func RecordEvent(eventType string) {
	if globalSettlementCollector != nil {
		globalSettlementCollector.RecordEvent(eventType)
	}
}
