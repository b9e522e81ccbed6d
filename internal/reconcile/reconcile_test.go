package reconcile

import (
	"context"
	"testing"

	"github.com/and161185/paygate/internal/commission"
	"github.com/and161185/paygate/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeStorage struct {
	entries []model.Receivable
	updated []model.Receivable
}

func (f *fakeStorage) ListReceivables(_ context.Context, _ model.ReceivableFilter) ([]model.Receivable, error) {
	return f.entries, nil
}

func (f *fakeStorage) UpdateReceivableAmounts(_ context.Context, rcv model.Receivable) error {
	f.updated = append(f.updated, rcv)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(orderID, gross, comm, net string, tier int, pct string) model.Receivable {
	return model.Receivable{
		SellerID:       "S1",
		OrderID:        orderID,
		Gross:          dec(gross),
		Commission:     dec(comm),
		Net:            dec(net),
		Tier:           tier,
		AppliedPercent: dec(pct),
		Status:         model.ReceivableHeld,
	}
}

func TestReconcileCorrectsStaleEntries(t *testing.T) {
	// ORD-2 was produced by the old flat-10% configuration
	store := &fakeStorage{entries: []model.Receivable{
		entry("ORD-1", "12.00", "1.80", "10.20", 1, "15"),
		entry("ORD-2", "30.00", "3.00", "27.00", 0, "10"),
		entry("ORD-3", "0.00", "0.00", "0.00", 0, "0"),
	}}

	r := New(store, commission.DefaultTieredSchedule(), zaptest.NewLogger(t).Sugar())
	report, err := r.Run(context.Background(), model.ReceivableFilter{}, false)
	require.NoError(t, err)

	require.Equal(t, 3, report.Scanned)
	require.Equal(t, 1, report.Corrected)
	require.Equal(t, 1, report.Skipped)

	require.Len(t, store.updated, 1)
	got := store.updated[0]
	require.Equal(t, "ORD-2", got.OrderID)
	require.True(t, got.Commission.Equal(dec("5.00")), "commission = %s", got.Commission)
	require.True(t, got.Net.Equal(dec("25.00")), "net = %s", got.Net)
	require.Equal(t, 2, got.Tier)
}

func TestReconcileIsIdempotent(t *testing.T) {
	store := &fakeStorage{entries: []model.Receivable{
		entry("ORD-2", "30.00", "5.00", "25.00", 2, "10"),
	}}

	r := New(store, commission.DefaultTieredSchedule(), zaptest.NewLogger(t).Sugar())
	report, err := r.Run(context.Background(), model.ReceivableFilter{}, false)
	require.NoError(t, err)

	require.Equal(t, 0, report.Corrected)
	require.Empty(t, store.updated)
}

func TestReconcileDryRun(t *testing.T) {
	store := &fakeStorage{entries: []model.Receivable{
		entry("ORD-2", "30.00", "3.00", "27.00", 0, "10"),
	}}

	r := New(store, commission.DefaultTieredSchedule(), zaptest.NewLogger(t).Sugar())
	report, err := r.Run(context.Background(), model.ReceivableFilter{}, true)
	require.NoError(t, err)

	require.Equal(t, 1, report.Corrected)
	require.True(t, report.DryRun)
	require.Empty(t, store.updated)
}

func TestReconcileRejectsBadSchedule(t *testing.T) {
	store := &fakeStorage{}

	r := New(store, commission.TieredSchedule{}, zaptest.NewLogger(t).Sugar())
	_, err := r.Run(context.Background(), model.ReceivableFilter{}, false)
	require.Error(t, err)
}
