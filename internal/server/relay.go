package server

import (
	"html/template"
	"net/http"
	"sort"

	"github.com/and161185/paygate/internal/sign"
	"github.com/shopspring/decimal"
)

// relayAllowedFields is the fixed set of gateway parameters the relay
// forwards. Anything else a client sends is dropped, never echoed into
// the outbound form.
var relayAllowedFields = map[string]bool{
	"return_url":           true,
	"cancel_url":           true,
	"notify_url":           true,
	"name_first":           true,
	"name_last":            true,
	"email_address":        true,
	"cell_number":          true,
	"m_payment_id":         true,
	"amount":               true,
	"item_name":            true,
	"item_description":     true,
	"custom_str1":          true,
	"custom_str2":          true,
	"custom_str3":          true,
	"email_confirmation":   true,
	"confirmation_address": true,
	"payment_method":       true,
}

var relayTemplate = template.Must(template.New("relay").Parse(`<!DOCTYPE html>
<html>
<body onload="document.forms[0].submit()">
<form action="{{.Action}}" method="post">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
<noscript><input type="submit" value="Pay"></noscript>
</form>
</body>
</html>
`))

type relayField struct {
	Name  string
	Value string
}

// GatewayRelayHandler signs an allow-listed payment request and responds
// with an auto-submitting form targeting the gateway process URL.
// Merchant credentials always come from configuration, never from the
// client.
func (s *Server) GatewayRelayHandler(w http.ResponseWriter, r *http.Request) {
	if s.config.GatewayProcessURL == "" {
		http.Error(w, "relay not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	for k, v := range r.Form {
		if relayAllowedFields[k] && len(v) > 0 && v[0] != "" {
			fields[k] = v[0]
		}
	}

	fields["merchant_id"] = s.config.MerchantID
	fields["merchant_key"] = s.config.MerchantKey

	if fields["m_payment_id"] == "" {
		http.Error(w, "m_payment_id required", http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(fields["amount"])
	if err != nil || !amount.IsPositive() {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}
	fields["amount"] = amount.StringFixed(2)

	fields["signature"] = sign.Sign(fields, s.config.Passphrase)

	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	view := struct {
		Action string
		Fields []relayField
	}{Action: s.config.GatewayProcessURL}
	for _, name := range names {
		view.Fields = append(view.Fields, relayField{Name: name, Value: fields[name]})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := relayTemplate.Execute(w, view); err != nil {
		s.deps.Logger.Errorf("render relay form: %v", err)
	}
}
