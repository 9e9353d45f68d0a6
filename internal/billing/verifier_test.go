package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	body := []byte(`{"type":"invoice.payment_made","data":{}}`)
	secret := "whsec_test"

	signature := Signature(body, secret)
	assert.True(t, VerifySignature(body, signature, secret))
}

func TestVerifySignatureRejectsBodyTampering(t *testing.T) {
	body := []byte(`{"type":"invoice.payment_made","data":{}}`)
	secret := "whsec_test"
	signature := Signature(body, secret)

	for i := range body {
		tampered := append([]byte(nil), body...)
		tampered[i] ^= 0x01
		assert.False(t, VerifySignature(tampered, signature, secret), "byte %d", i)
	}
}

func TestVerifySignatureRejectsSignatureTampering(t *testing.T) {
	body := []byte(`{"type":"subscription.created"}`)
	secret := "whsec_test"
	signature := Signature(body, secret)

	for i := range signature {
		tampered := []byte(signature)
		tampered[i] ^= 0x01
		assert.False(t, VerifySignature(body, string(tampered), secret))
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	body := []byte(`{"type":"subscription.created"}`)
	signature := Signature(body, "whsec_test")
	assert.False(t, VerifySignature(body, signature, "whsec_other"))
}
