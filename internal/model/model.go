package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentUnknown    PaymentStatus = "unknown"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
	PaymentFailed     PaymentStatus = "failed"
)

type OrderStatus string

const (
	OrderNone      OrderStatus = "none"
	OrderConfirmed OrderStatus = "confirmed"
)

type ReceivableStatus string

const (
	ReceivableHeld      ReceivableStatus = "held"
	ReceivableAvailable ReceivableStatus = "available"
	ReceivableDue       ReceivableStatus = "due"
	ReceivableCollected ReceivableStatus = "collected"
)

type DeliveryMode string

const (
	ModePickup           DeliveryMode = "pickup"
	ModePlatformDelivery DeliveryMode = "platform_delivery"
	ModeMerchantDelivery DeliveryMode = "merchant_delivery"
)

type Order struct {
	OrderID          string          `json:"order_id"`
	SellerID         string          `json:"seller_id"`
	BuyerID          string          `json:"buyer_id"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	OrderStatus      OrderStatus     `json:"order_status"`
	GatewayPaymentID string          `json:"gateway_payment_id,omitempty"`
	DeliveryMode     DeliveryMode    `json:"delivery_mode"`
	PaymentMethod    string          `json:"payment_method"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Receivable is one ledger line per order, owned by a seller.
// Key is (SellerID, OrderID); net = gross - commission always holds.
type Receivable struct {
	SellerID       string           `json:"seller_id"`
	OrderID        string           `json:"order_id"`
	Gross          decimal.Decimal  `json:"gross"`
	Commission     decimal.Decimal  `json:"commission"`
	Net            decimal.Decimal  `json:"net"`
	Tier           int              `json:"tier"`
	AppliedPercent decimal.Decimal  `json:"applied_percent"`
	Status         ReceivableStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ReceivableFilter selects ledger entries for listing/reconciliation.
// Zero values match everything.
type ReceivableFilter struct {
	SellerID string
	Statuses []ReceivableStatus
}

// PaymentSettings is the externally configured commission document.
// It is loaded once per invocation and passed by value, never read as
// ambient global state.
type PaymentSettings struct {
	ModePercents    map[DeliveryMode]decimal.Decimal
	ModeCaps        map[DeliveryMode]decimal.Decimal
	FallbackPercent decimal.Decimal
	CommissionMin   decimal.Decimal
	// InitialStatus per payment method; "held" unless configured otherwise.
	InitialStatusByMethod map[string]ReceivableStatus
	UpdatedAt             time.Time
}

// InitialStatus resolves the starting receivable status for a payment method.
func (ps PaymentSettings) InitialStatus(method string) ReceivableStatus {
	if st, ok := ps.InitialStatusByMethod[method]; ok && st != "" {
		return st
	}
	return ReceivableHeld
}
