package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Signature computes the expected webhook signature for a raw request body:
// HMAC-SHA256 keyed by the shared secret, base64 encoded.
func Signature(rawBody []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a provider-supplied signature against the raw body
// using a constant-time comparison. The raw body must be the exact bytes
// received on the wire; any re-serialization breaks the check.
func VerifySignature(rawBody []byte, provided, secret string) bool {
	expected := Signature(rawBody, secret)
	return hmac.Equal([]byte(expected), []byte(provided))
}
