package sign

import "testing"

func TestEncode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"two words", "two+words"},
		{"a&b=c", "a%26b%3Dc"},
		{"1+1", "1%2B1"},
		{"line\r\nbreak", "line%0Abreak"},
		{"line\nbreak", "line%0Abreak"},
		{"keep-._!~*'()", "keep-._!~*'()"},
		{"50%", "50%25"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Encode(tt.input); got != tt.want {
			t.Errorf("Encode(%q) = %q; want %q", tt.input, got, tt.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []string{
		"two words",
		"newline\nreserved&=+",
		"email@example.com",
		"100% + VAT",
	}

	for _, v := range values {
		decoded, err := Decode(Encode(v))
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", v, err)
		}
		if decoded != v {
			t.Errorf("round trip of %q gave %q", v, decoded)
		}
	}
}

func testPayload() map[string]string {
	return map[string]string{
		"m_payment_id":   "ORD-1001",
		"pf_payment_id":  "PF123",
		"payment_status": "COMPLETE",
		"amount_gross":   "30.00",
	}
}

func TestSignKnownVector(t *testing.T) {
	const want = "e1a3082c2daa2bbd6c1fceaaeed03ef9"

	got := Sign(testPayload(), "s3cret")
	if got != want {
		t.Errorf("Sign() = %s; want %s", got, want)
	}
}

func TestVerify(t *testing.T) {
	payload := testPayload()
	payload["signature"] = Sign(payload, "s3cret")

	if !Verify(payload, "s3cret") {
		t.Error("expected valid signature to verify")
	}

	// deterministic across repeated calls
	for i := 0; i < 3; i++ {
		if !Verify(payload, "s3cret") {
			t.Errorf("verification flipped on call %d", i)
		}
	}
}

func TestVerifyCaseInsensitiveSignature(t *testing.T) {
	payload := testPayload()
	sig := Sign(payload, "s3cret")
	payload["Signature"] = "E1A3082C2DAA2BBD6C1FCEAAEED03EF9"

	if sig != "e1a3082c2daa2bbd6c1fceaaeed03ef9" {
		t.Fatalf("unexpected digest %s", sig)
	}
	if !Verify(payload, "s3cret") {
		t.Error("expected uppercase signature under mixed-case key to verify")
	}
}

func TestVerifyTamper(t *testing.T) {
	payload := testPayload()
	payload["signature"] = Sign(payload, "s3cret")

	tampered := func(mutate func(map[string]string)) map[string]string {
		m := make(map[string]string, len(payload))
		for k, v := range payload {
			m[k] = v
		}
		mutate(m)
		return m
	}

	cases := map[string]map[string]string{
		"amount changed":    tampered(func(m map[string]string) { m["amount_gross"] = "30.01" }),
		"signature flipped": tampered(func(m map[string]string) { m["signature"] = "0" + m["signature"][1:] }),
		"field added":       tampered(func(m map[string]string) { m["custom_str1"] = "x" }),
		"wrong secret used": tampered(func(m map[string]string) { m["signature"] = Sign(m, "other") }),
	}

	for name, fields := range cases {
		if Verify(fields, "s3cret") {
			t.Errorf("%s: expected verification failure", name)
		}
	}
}

func TestVerifyMissingSignature(t *testing.T) {
	if Verify(testPayload(), "s3cret") {
		t.Error("expected false when signature field is absent")
	}
}

func TestSignWithoutSecret(t *testing.T) {
	payload := testPayload()
	payload["signature"] = Sign(payload, "")

	if !Verify(payload, "") {
		t.Error("expected empty-secret signature to verify")
	}
	if Verify(payload, "s3cret") {
		t.Error("expected mismatch when a passphrase is required")
	}
}
