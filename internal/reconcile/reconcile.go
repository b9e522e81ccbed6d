// Package reconcile recomputes existing receivables under the
// tiered-by-value schedule. It replaces the pile of one-off correction
// scripts with a single idempotent pass shared by the admin endpoint and
// any offline batch run.
package reconcile

import (
	"context"
	"fmt"

	"github.com/and161185/paygate/internal/commission"
	"github.com/and161185/paygate/internal/metrics"
	"github.com/and161185/paygate/internal/model"
	"go.uber.org/zap"
)

type Storage interface {
	ListReceivables(ctx context.Context, filter model.ReceivableFilter) ([]model.Receivable, error)
	UpdateReceivableAmounts(ctx context.Context, rcv model.Receivable) error
}

type Reconciler struct {
	storage  Storage
	schedule commission.TieredSchedule
	logger   *zap.SugaredLogger
}

func New(storage Storage, schedule commission.TieredSchedule, logger *zap.SugaredLogger) *Reconciler {
	return &Reconciler{storage: storage, schedule: schedule, logger: logger}
}

type Report struct {
	Scanned   int  `json:"scanned"`
	Corrected int  `json:"corrected"`
	Skipped   int  `json:"skipped"`
	DryRun    bool `json:"dry_run"`
}

// Run recomputes every entry matched by the filter. Entries already
// matching the schedule are left alone, so re-running converges to a
// fixed point. Entries with a non-positive gross are a data-integrity
// problem and are skipped, never rewritten to a zero-fee line.
func (r *Reconciler) Run(ctx context.Context, filter model.ReceivableFilter, dryRun bool) (Report, error) {
	if err := r.schedule.Validate(); err != nil {
		return Report{}, err
	}

	entries, err := r.storage.ListReceivables(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("list receivables: %w", err)
	}

	report := Report{DryRun: dryRun}
	for _, entry := range entries {
		report.Scanned++

		res, err := commission.ComputeTiered(entry.Gross, r.schedule)
		if err != nil {
			r.logger.Warnf("receivable %s/%s: gross %s unusable: %v",
				entry.SellerID, entry.OrderID, entry.Gross, err)
			report.Skipped++
			continue
		}

		if entry.Commission.Equal(res.Commission) &&
			entry.Net.Equal(res.Net) &&
			entry.Tier == res.Tier &&
			entry.AppliedPercent.Equal(res.AppliedPercent) {
			continue
		}

		r.logger.Infof("receivable %s/%s: commission %s -> %s (tier %d -> %d)",
			entry.SellerID, entry.OrderID, entry.Commission, res.Commission, entry.Tier, res.Tier)

		if !dryRun {
			entry.Commission = res.Commission
			entry.Net = res.Net
			entry.Tier = res.Tier
			entry.AppliedPercent = res.AppliedPercent

			if err := r.storage.UpdateReceivableAmounts(ctx, entry); err != nil {
				return report, fmt.Errorf("update receivable %s/%s: %w", entry.SellerID, entry.OrderID, err)
			}
			metrics.ReconcileCorrections.Inc()
		}
		report.Corrected++
	}

	return report, nil
}
