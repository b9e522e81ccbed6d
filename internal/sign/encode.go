package sign

import (
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// shouldEscape reports whether c must be percent-encoded. The gateway
// expects encodeURIComponent semantics, which leave more characters bare
// than net/url does: - _ . ! ~ * ' ( ) stay literal.
func shouldEscape(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return false
	}
	return true
}

// Encode escapes a value the way the gateway canonicalizes it:
// encodeURIComponent, then %20 becomes + and %0D%0A collapses to %0A.
// This is not interchangeable with url.QueryEscape; a generic encoder
// produces digests the gateway will never match.
func Encode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case shouldEscape(c):
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		default:
			b.WriteByte(c)
		}
	}
	return strings.ReplaceAll(b.String(), "%0D%0A", "%0A")
}

// Decode reverses Encode per the gateway's own decoding rule. CRLF that
// was normalized to LF stays LF; everything else round-trips.
func Decode(s string) (string, error) {
	return url.QueryUnescape(s)
}
