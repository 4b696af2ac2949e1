// Package jobs holds background work wired into the scheduler.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hospfin/ledger/internal/finance"
	"github.com/hospfin/ledger/internal/service/report"
)

var reconciliationDifference = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "hospfin",
	Name:      "reconciliation_difference",
	Help:      "Balance sheet difference (assets minus liabilities, fund and profit) from the last reconciliation run.",
})

// Reconciler recomputes the balance sheet as of now and reports whether
// the two sides agree. A nonzero difference is surfaced, never forced to
// zero, so data problems stay visible.
type Reconciler struct {
	reports report.Service
	log     *slog.Logger
}

func NewReconciler(reports report.Service, logger *slog.Logger) *Reconciler {
	return &Reconciler{reports: reports, log: logger}
}

func (rc *Reconciler) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	bs, err := rc.reports.BalanceSheet(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	diff := finance.Float(bs.Difference)
	reconciliationDifference.Set(diff)
	if !bs.Balanced {
		rc.log.Warn("balance sheet out of balance",
			"difference", diff,
			"assets", finance.Float(bs.Assets.Total),
			"liabilities", finance.Float(bs.Liabilities.Total),
			"fund", finance.Float(bs.Fund),
			"net_profit", finance.Float(bs.NetProfit),
		)
		return nil
	}
	rc.log.Info("balance sheet reconciled", "assets", finance.Float(bs.Assets.Total))
	return nil
}
