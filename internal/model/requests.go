package model

import (
	"fmt"

	"github.com/and161185/paygate/internal/errs"
	"github.com/shopspring/decimal"
)

// Notification is the validated form of an inbound gateway webhook.
// Fields keeps every received key/value pair untouched for signing.
type Notification struct {
	OrderID          string
	GatewayPaymentID string
	GatewayStatus    string
	PaymentStatus    PaymentStatus
	Gross            decimal.Decimal
	HasGross         bool
	Fields           map[string]string
}

// ParseNotification validates the raw webhook fields and maps the gateway
// status string onto the internal payment status.
func ParseNotification(fields map[string]string) (Notification, error) {
	n := Notification{Fields: fields}

	n.OrderID = fields["m_payment_id"]
	if n.OrderID == "" {
		return n, fmt.Errorf("m_payment_id: %w", errs.ErrMissingField)
	}

	n.GatewayStatus = fields["payment_status"]
	if n.GatewayStatus == "" {
		return n, fmt.Errorf("payment_status: %w", errs.ErrMissingField)
	}

	switch n.GatewayStatus {
	case "COMPLETE":
		n.PaymentStatus = PaymentPaid
	case "FAILED", "CANCELLED":
		n.PaymentStatus = PaymentFailed
	case "PENDING":
		n.PaymentStatus = PaymentProcessing
	default:
		return n, fmt.Errorf("payment_status %q: %w", n.GatewayStatus, errs.ErrBadStatus)
	}

	n.GatewayPaymentID = fields["pf_payment_id"]

	if raw := fields["amount_gross"]; raw != "" {
		gross, err := decimal.NewFromString(raw)
		if err != nil {
			return n, fmt.Errorf("amount_gross %q: %w", raw, errs.ErrInvalidGross)
		}
		n.Gross = gross
		n.HasGross = true
	}

	return n, nil
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ReconcileRequest struct {
	SellerID string   `json:"seller_id,omitempty"`
	Statuses []string `json:"statuses,omitempty"`
	DryRun   bool     `json:"dry_run,omitempty"`
}
