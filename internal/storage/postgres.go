package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/and161185/paygate/internal/errs"
	"github.com/and161185/paygate/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL DEFAULT '',
		buyer_id TEXT NOT NULL DEFAULT '',
		gross_amount NUMERIC NOT NULL,
		payment_status TEXT NOT NULL DEFAULT 'unknown',
		order_status TEXT NOT NULL DEFAULT 'none',
		gateway_payment_id TEXT NOT NULL DEFAULT '',
		delivery_mode TEXT NOT NULL DEFAULT 'pickup',
		payment_method TEXT NOT NULL DEFAULT 'online',
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS receivables (
		seller_id TEXT NOT NULL,
		order_id TEXT NOT NULL,
		gross NUMERIC NOT NULL,
		commission NUMERIC NOT NULL,
		net NUMERIC NOT NULL,
		tier INT NOT NULL DEFAULT 0,
		applied_percent NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'held',
		created_at TIMESTAMP DEFAULT NOW(),
		updated_at TIMESTAMP DEFAULT NOW(),
		PRIMARY KEY (seller_id, order_id)
	);
	CREATE TABLE IF NOT EXISTS payment_settings (
		id INT PRIMARY KEY CHECK (id = 1),
		pickup_percent NUMERIC NOT NULL DEFAULT 6,
		platform_percent NUMERIC NOT NULL DEFAULT 11,
		merchant_percent NUMERIC NOT NULL DEFAULT 9,
		fallback_percent NUMERIC NOT NULL DEFAULT 5,
		commission_min NUMERIC NOT NULL DEFAULT 0,
		pickup_cap NUMERIC NOT NULL DEFAULT 0,
		platform_cap NUMERIC NOT NULL DEFAULT 0,
		merchant_cap NUMERIC NOT NULL DEFAULT 0,
		initial_status JSONB NOT NULL DEFAULT '{}',
		updated_at TIMESTAMP DEFAULT NOW()
	);
	INSERT INTO payment_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgreStorage(ctx context.Context, DatabaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, DatabaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

func (s *PostgresStorage) GetOrder(ctx context.Context, orderID string) (model.Order, error) {
	const query = `
		SELECT order_id, seller_id, buyer_id, gross_amount::TEXT,
		       payment_status, order_status, gateway_payment_id,
		       delivery_mode, payment_method, created_at, updated_at
		FROM orders WHERE order_id = $1`

	var o model.Order
	var gross string

	err := s.db.QueryRow(ctx, query, orderID).Scan(
		&o.OrderID, &o.SellerID, &o.BuyerID, &gross,
		&o.PaymentStatus, &o.OrderStatus, &o.GatewayPaymentID,
		&o.DeliveryMode, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, errs.ErrOrderNotFound
		}
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}

	o.GrossAmount, err = decimal.NewFromString(gross)
	if err != nil {
		return model.Order{}, fmt.Errorf("parse gross: %w", err)
	}

	return o, nil
}

// UpdateOrderPayment records a non-completed payment state. Order
// confirmation is sticky: order_status is never touched here, a failed
// retry after confirmation only changes payment_status.
func (s *PostgresStorage) UpdateOrderPayment(ctx context.Context, orderID string, status model.PaymentStatus, gatewayID string) error {
	const query = `
		UPDATE orders
		SET payment_status = $2,
		    gateway_payment_id = COALESCE(NULLIF($3, ''), gateway_payment_id),
		    updated_at = NOW()
		WHERE order_id = $1`

	tag, err := s.db.Exec(ctx, query, orderID, status, gatewayID)
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrOrderNotFound
	}

	return nil
}

// ConfirmOrderPayment applies the terminal completed state and merges the
// seller receivable in one transaction. Re-running with the same input
// converges on the same row; concurrent duplicate deliveries are closed
// out by the ON CONFLICT merge. The existing receivable status is kept so
// a settlement that already collected the entry is not reopened.
func (s *PostgresStorage) ConfirmOrderPayment(ctx context.Context, orderID string, gatewayID string, rcv model.Receivable) error {
	const updateOrderQuery = `
		UPDATE orders
		SET payment_status = 'paid',
		    order_status = 'confirmed',
		    gateway_payment_id = COALESCE(NULLIF($2, ''), gateway_payment_id),
		    updated_at = NOW()
		WHERE order_id = $1`

	const upsertReceivableQuery = `
		INSERT INTO receivables (seller_id, order_id, gross, commission, net, tier, applied_percent, status)
		VALUES ($1, $2, $3::NUMERIC, $4::NUMERIC, $5::NUMERIC, $6, $7::NUMERIC, $8)
		ON CONFLICT (seller_id, order_id) DO UPDATE SET
			gross = EXCLUDED.gross,
			commission = EXCLUDED.commission,
			net = EXCLUDED.net,
			tier = EXCLUDED.tier,
			applied_percent = EXCLUDED.applied_percent,
			updated_at = NOW()`

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, updateOrderQuery, orderID, gatewayID)
	if err != nil {
		return fmt.Errorf("confirm order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrOrderNotFound
	}

	_, err = tx.Exec(ctx, upsertReceivableQuery,
		rcv.SellerID, rcv.OrderID,
		rcv.Gross.String(), rcv.Commission.String(), rcv.Net.String(),
		rcv.Tier, rcv.AppliedPercent.String(), rcv.Status)
	if err != nil {
		return fmt.Errorf("upsert receivable: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetPaymentSettings(ctx context.Context) (model.PaymentSettings, error) {
	const query = `
		SELECT pickup_percent::TEXT, platform_percent::TEXT, merchant_percent::TEXT,
		       fallback_percent::TEXT, commission_min::TEXT,
		       pickup_cap::TEXT, platform_cap::TEXT, merchant_cap::TEXT,
		       initial_status, updated_at
		FROM payment_settings WHERE id = 1`

	var pickupPct, platformPct, merchantPct, fallbackPct, commissionMin string
	var pickupCap, platformCap, merchantCap string
	var initialStatusRaw []byte

	var settings model.PaymentSettings
	err := s.db.QueryRow(ctx, query).Scan(
		&pickupPct, &platformPct, &merchantPct,
		&fallbackPct, &commissionMin,
		&pickupCap, &platformCap, &merchantCap,
		&initialStatusRaw, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PaymentSettings{}, errs.ErrSettingsNotFound
		}
		return model.PaymentSettings{}, fmt.Errorf("get payment settings: %w", err)
	}

	settings.ModePercents = map[model.DeliveryMode]decimal.Decimal{}
	settings.ModeCaps = map[model.DeliveryMode]decimal.Decimal{}

	for _, f := range []struct {
		raw  string
		mode model.DeliveryMode
		dst  map[model.DeliveryMode]decimal.Decimal
	}{
		{pickupPct, model.ModePickup, settings.ModePercents},
		{platformPct, model.ModePlatformDelivery, settings.ModePercents},
		{merchantPct, model.ModeMerchantDelivery, settings.ModePercents},
		{pickupCap, model.ModePickup, settings.ModeCaps},
		{platformCap, model.ModePlatformDelivery, settings.ModeCaps},
		{merchantCap, model.ModeMerchantDelivery, settings.ModeCaps},
	} {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return model.PaymentSettings{}, fmt.Errorf("parse settings: %w", err)
		}
		f.dst[f.mode] = d
	}

	if settings.FallbackPercent, err = decimal.NewFromString(fallbackPct); err != nil {
		return model.PaymentSettings{}, fmt.Errorf("parse fallback percent: %w", err)
	}
	if settings.CommissionMin, err = decimal.NewFromString(commissionMin); err != nil {
		return model.PaymentSettings{}, fmt.Errorf("parse commission min: %w", err)
	}

	if len(initialStatusRaw) > 0 {
		if err := json.Unmarshal(initialStatusRaw, &settings.InitialStatusByMethod); err != nil {
			return model.PaymentSettings{}, fmt.Errorf("parse initial status map: %w", err)
		}
	}

	return settings, nil
}

func (s *PostgresStorage) ListReceivables(ctx context.Context, filter model.ReceivableFilter) ([]model.Receivable, error) {
	const query = `
		SELECT seller_id, order_id, gross::TEXT, commission::TEXT, net::TEXT,
		       tier, applied_percent::TEXT, status, created_at, updated_at
		FROM receivables
		WHERE ($1::TEXT = '' OR seller_id = $1)
		  AND (cardinality($2::TEXT[]) = 0 OR status = ANY($2::TEXT[]))
		ORDER BY created_at ASC`

	statuses := make([]string, 0, len(filter.Statuses))
	for _, st := range filter.Statuses {
		statuses = append(statuses, string(st))
	}

	rows, err := s.db.Query(ctx, query, filter.SellerID, statuses)
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()

	var list []model.Receivable
	for rows.Next() {
		var r model.Receivable
		var gross, commission, net, percent string

		err := rows.Scan(&r.SellerID, &r.OrderID, &gross, &commission, &net,
			&r.Tier, &percent, &r.Status, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}

		if r.Gross, err = decimal.NewFromString(gross); err != nil {
			return nil, fmt.Errorf("parse gross: %w", err)
		}
		if r.Commission, err = decimal.NewFromString(commission); err != nil {
			return nil, fmt.Errorf("parse commission: %w", err)
		}
		if r.Net, err = decimal.NewFromString(net); err != nil {
			return nil, fmt.Errorf("parse net: %w", err)
		}
		if r.AppliedPercent, err = decimal.NewFromString(percent); err != nil {
			return nil, fmt.Errorf("parse applied percent: %w", err)
		}

		list = append(list, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}

// UpdateReceivableAmounts rewrites the computed fields of an existing
// entry. Gross and lifecycle status stay untouched.
func (s *PostgresStorage) UpdateReceivableAmounts(ctx context.Context, rcv model.Receivable) error {
	const query = `
		UPDATE receivables
		SET commission = $3::NUMERIC,
		    net = $4::NUMERIC,
		    tier = $5,
		    applied_percent = $6::NUMERIC,
		    updated_at = NOW()
		WHERE seller_id = $1 AND order_id = $2`

	_, err := s.db.Exec(ctx, query,
		rcv.SellerID, rcv.OrderID,
		rcv.Commission.String(), rcv.Net.String(),
		rcv.Tier, rcv.AppliedPercent.String())
	if err != nil {
		return fmt.Errorf("update receivable: %w", err)
	}

	return nil
}
