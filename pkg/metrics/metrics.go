// Package metrics exposes the engine's observability signal. Liquidation
// outcomes are counted and the last observed collateral ratio is published
// as a gauge; no history is persisted.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger holds the prometheus instruments for the collateral engine.
type Ledger struct {
	CollateralRatio  *prometheus.GaugeVec
	Liquidations     prometheus.Counter
	LiquidatedUnits  prometheus.Counter
	RepaidDebtCents  prometheus.Counter
	HealthyChecks    prometheus.Counter
	PaymentsSettled  prometheus.Counter
	SettlementErrors prometheus.Counter
}

// NewLedger registers the ledger instruments on the given registerer.
func NewLedger(reg prometheus.Registerer) *Ledger {
	f := promauto.With(reg)
	return &Ledger{
		CollateralRatio: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ledger",
			Name:      "collateral_ratio_percent",
			Help:      "Last computed collateral ratio per owner, in percent.",
		}, []string{"owner"}),
		Liquidations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "liquidations_total",
			Help:      "Number of liquidations executed.",
		}),
		LiquidatedUnits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "liquidated_units_total",
			Help:      "Native units moved from treasury to vaults by liquidation.",
		}),
		RepaidDebtCents: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "repaid_debt_cents_total",
			Help:      "Debt repaid by liquidation, in cents.",
		}),
		HealthyChecks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "healthy_evaluations_total",
			Help:      "Engine evaluations that required no rebalance.",
		}),
		PaymentsSettled: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "payments_settled_total",
			Help:      "Payments settled against spending accounts.",
		}),
		SettlementErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "settlement_errors_total",
			Help:      "External transfers that failed and rolled back.",
		}),
	}
}
