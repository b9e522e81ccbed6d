// Package sign implements the payment gateway's keyed-digest scheme:
// fields are sorted, percent-encoded with the gateway's quirks and joined
// into a canonical string whose MD5 is compared against the received
// signature field.
package sign

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"
)

const signatureField = "signature"

// Canonical builds the gateway signing string: every field except
// "signature" (case-insensitive), sorted by name byte-wise, joined as
// key=Encode(value) pairs with '&'. A non-empty secret is appended as
// the passphrase field.
func Canonical(fields map[string]string, secret string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if strings.EqualFold(k, signatureField) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(Encode(fields[k]))
	}
	if secret != "" {
		b.WriteString("&passphrase=")
		b.WriteString(Encode(secret))
	}
	return b.String()
}

// Sign computes the lowercase hex digest of the canonical string.
func Sign(fields map[string]string, secret string) string {
	sum := md5.Sum([]byte(Canonical(fields, secret)))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the payload's signature field matches the digest
// computed over the remaining fields. Missing signature is a mismatch.
// Pure function, no side effects.
func Verify(fields map[string]string, secret string) bool {
	var received string
	for k, v := range fields {
		if strings.EqualFold(k, signatureField) {
			received = v
			break
		}
	}
	if received == "" {
		return false
	}

	computed := Sign(fields, secret)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(received)), []byte(computed)) == 1
}
