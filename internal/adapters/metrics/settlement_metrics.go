package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/rareships-go/internal/domain/settlement"
	"github.com/andrescamacho/rareships-go/internal/domain/shared"
)

// SettlementMetricsCollector handles settlement, energy and mining metrics
type SettlementMetricsCollector struct {
	settlementsTotal *prometheus.CounterVec
	tilesMoved       prometheus.Counter
	energyUsed       *prometheus.CounterVec
	energyRecharged  prometheus.Counter
	resourcesMined   *prometheus.CounterVec
	ordersCompleted  *prometheus.CounterVec

	fleetSweepDuration prometheus.Histogram
	fleetSweepShips    *prometheus.CounterVec

	events *prometheus.CounterVec
}

var _ SettlementMetricsRecorder = (*SettlementMetricsCollector)(nil)

// NewSettlementMetricsCollector creates a new settlement metrics collector
func NewSettlementMetricsCollector() *SettlementMetricsCollector {
	return &SettlementMetricsCollector{
		settlementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "settlements_total",
				Help:      "Total settlements by operation and result",
			},
			[]string{"operation", "result"},
		),
		tilesMoved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tiles_moved_total",
				Help:      "Total tiles moved by all ships",
			},
		),
		energyUsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "energy_used_total",
				Help:      "Energy spent by order kind",
			},
			[]string{"kind"},
		),
		energyRecharged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "energy_recharged_total",
				Help:      "Energy restored by recharge",
			},
		),
		resourcesMined: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resources_mined_total",
				Help:      "Units mined by resource type",
			},
			[]string{"resource"},
		),
		ordersCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_completed_total",
				Help:      "Orders popped from queues by kind",
			},
			[]string{"kind"},
		),
		fleetSweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fleet_sweep_duration_seconds",
				Help:      "Duration of a full fleet settlement sweep",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
			},
		),
		fleetSweepShips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fleet_sweep_ships_total",
				Help:      "Ships visited by fleet sweeps by result",
			},
			[]string{"result"},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Events published on the event bus by type",
			},
			[]string{"type"},
		),
	}
}

// Register registers all settlement metrics with the Prometheus registry
func (c *SettlementMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.settlementsTotal,
		c.tilesMoved,
		c.energyUsed,
		c.energyRecharged,
		c.resourcesMined,
		c.ordersCompleted,
		c.fleetSweepDuration,
		c.fleetSweepShips,
		c.events,
	}
	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// RecordOutcome records everything a successful settlement did
func (c *SettlementMetricsCollector) RecordOutcome(operation string, outcome *settlement.Outcome) {
	result := "noop"
	if outcome.Changed() {
		result = "changed"
	}
	if outcome.Deferred {
		result = "deferred"
	}
	c.settlementsTotal.WithLabelValues(operation, result).Inc()

	if outcome.Moved > 0 {
		c.tilesMoved.Add(float64(outcome.Moved))
	}
	if outcome.EnergyUsed > 0 {
		c.energyUsed.WithLabelValues(string(outcome.UsedBy)).Add(float64(outcome.EnergyUsed))
	}
	if outcome.Recharged > 0 {
		c.energyRecharged.Add(float64(outcome.Recharged))
	}
	if outcome.Mined != nil {
		c.resourcesMined.WithLabelValues(outcome.Mined.Type.String()).Add(float64(outcome.Mined.Quantity))
	}
	if outcome.Completed != nil {
		c.ordersCompleted.WithLabelValues(string(outcome.Completed.Kind())).Inc()
	}
}

// RecordFailure counts a failed settlement under the error kind
func (c *SettlementMetricsCollector) RecordFailure(operation string, err error) {
	c.settlementsTotal.WithLabelValues(operation, errorLabel(err)).Inc()
}

// RecordFleetSweep records one pass over the fleet
func (c *SettlementMetricsCollector) RecordFleetSweep(settled, failed int, durationSeconds float64) {
	c.fleetSweepDuration.Observe(durationSeconds)
	c.fleetSweepShips.WithLabelValues("settled").Add(float64(settled))
	c.fleetSweepShips.WithLabelValues("failed").Add(float64(failed))
}

// RecordEvent counts one published event
func (c *SettlementMetricsCollector) RecordEvent(eventType string) {
	c.events.WithLabelValues(eventType).Inc()
}

var errorLabels = []struct {
	kind  error
	label string
}{
	{shared.ErrShipNotFound, "ship_not_found"},
	{shared.ErrSiteNotFound, "site_not_found"},
	{shared.ErrInvalidOrder, "invalid_order"},
	{shared.ErrResourceNotFound, "resource_not_found"},
	{shared.ErrNotSiteOwner, "not_site_owner"},
	{shared.ErrInventoryFull, "inventory_full"},
	{shared.ErrNotOwner, "not_owner"},
}

func errorLabel(err error) string {
	for _, l := range errorLabels {
		if errors.Is(err, l.kind) {
			return l.label
		}
	}
	return "error"
}
