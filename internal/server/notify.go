package server

import (
	"errors"
	"net/http"

	"github.com/and161185/paygate/internal/commission"
	"github.com/and161185/paygate/internal/errs"
	"github.com/and161185/paygate/internal/metrics"
	"github.com/and161185/paygate/internal/model"
	"github.com/and161185/paygate/internal/sign"
)

// PaymentNotifyHandler processes the gateway's payment notification.
// Order of checks matters: nothing is read or written before the
// signature verifies, and the ledger write happens in one transaction so
// the gateway's at-least-once retries converge on a single receivable.
func (s *Server) PaymentNotifyHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		metrics.NotificationsTotal.WithLabelValues("rejected_input").Inc()
		return
	}

	fields := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	if !sign.Verify(fields, s.config.Passphrase) {
		s.deps.Logger.Warnf("notification rejected: %v", errs.ErrBadSignature)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		metrics.NotificationsTotal.WithLabelValues("rejected_signature").Inc()
		return
	}

	n, err := model.ParseNotification(fields)
	if err != nil {
		s.deps.Logger.Warnf("notification rejected: %v", err)
		http.Error(w, "invalid notification", http.StatusBadRequest)
		metrics.NotificationsTotal.WithLabelValues("rejected_input").Inc()
		return
	}

	order, err := s.storage.GetOrder(r.Context(), n.OrderID)
	if err != nil {
		if errors.Is(err, errs.ErrOrderNotFound) {
			s.deps.Logger.Warnf("notification for unknown order %s", n.OrderID)
			http.Error(w, "unknown order", http.StatusBadRequest)
			metrics.NotificationsTotal.WithLabelValues("rejected_input").Inc()
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		return
	}

	if n.HasGross && !n.Gross.Equal(order.GrossAmount) {
		s.deps.Logger.Warnf("order %s: notified gross %s does not match stored %s",
			order.OrderID, n.Gross, order.GrossAmount)
		http.Error(w, "amount mismatch", http.StatusBadRequest)
		metrics.NotificationsTotal.WithLabelValues("rejected_input").Inc()
		return
	}

	switch n.PaymentStatus {
	case model.PaymentPaid:
		if err := s.applyCompleted(r, order, n); err != nil {
			s.writeApplyError(w, order.OrderID, err)
			return
		}
	default:
		if err := s.storage.UpdateOrderPayment(r.Context(), order.OrderID, n.PaymentStatus, n.GatewayPaymentID); err != nil {
			s.writeApplyError(w, order.OrderID, err)
			return
		}
		if n.PaymentStatus == model.PaymentFailed {
			s.notifyParties("payment_failed", order, model.Receivable{})
		}
	}

	metrics.NotificationsTotal.WithLabelValues("accepted").Inc()
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// applyCompleted moves the order to paid and creates or merges the seller
// receivable. A repeat COMPLETE for an already-paid order only refreshes
// the timestamp.
func (s *Server) applyCompleted(r *http.Request, order model.Order, n model.Notification) error {
	if order.PaymentStatus == model.PaymentPaid {
		return s.storage.UpdateOrderPayment(r.Context(), order.OrderID, model.PaymentPaid, n.GatewayPaymentID)
	}

	if !order.GrossAmount.IsPositive() {
		// a paid order with no price is broken checkout data, not a
		// zero-fee receivable
		return errs.ErrInvalidGross
	}

	settings, err := s.settings.GetPaymentSettings(r.Context())
	if err != nil {
		return err
	}

	res, err := commission.ComputeByMode(order.GrossAmount, order.DeliveryMode, settings)
	if err != nil {
		return err
	}

	rcv := model.Receivable{
		SellerID:       order.SellerID,
		OrderID:        order.OrderID,
		Gross:          order.GrossAmount,
		Commission:     res.Commission,
		Net:            res.Net,
		Tier:           res.Tier,
		AppliedPercent: res.AppliedPercent,
		Status:         settings.InitialStatus(order.PaymentMethod),
	}

	if err := s.storage.ConfirmOrderPayment(r.Context(), order.OrderID, n.GatewayPaymentID, rcv); err != nil {
		return err
	}
	metrics.ReceivablesCreated.Inc()

	s.notifyParties("payment_complete", order, rcv)
	return nil
}

func (s *Server) writeApplyError(w http.ResponseWriter, orderID string, err error) {
	s.deps.Logger.Errorf("apply notification for order %s: %v", orderID, err)

	switch {
	case errors.Is(err, errs.ErrInvalidGross), errors.Is(err, errs.ErrBadSchedule),
		errors.Is(err, errs.ErrOrderNotFound):
		http.Error(w, "invalid notification", http.StatusBadRequest)
		metrics.NotificationsTotal.WithLabelValues("rejected_input").Inc()
	default:
		// surface a server error so the gateway redelivers
		http.Error(w, "db error", http.StatusInternalServerError)
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
	}
}

// notifyParties emits best-effort notifications. Enqueue never blocks
// and failures stay inside the outbox.
func (s *Server) notifyParties(event string, order model.Order, rcv model.Receivable) {
	payload := map[string]string{
		"event":    event,
		"order_id": order.OrderID,
		"buyer_id": order.BuyerID,
	}
	s.outbox.Enqueue("buyer_"+event, s.config.BuyerNotifyURL, payload)

	if event == "payment_complete" {
		sellerPayload := map[string]string{
			"event":      event,
			"order_id":   order.OrderID,
			"seller_id":  order.SellerID,
			"gross":      rcv.Gross.String(),
			"commission": rcv.Commission.String(),
			"net":        rcv.Net.String(),
		}
		s.outbox.Enqueue("seller_"+event, s.config.SellerNotifyURL, sellerPayload)
	}
}
