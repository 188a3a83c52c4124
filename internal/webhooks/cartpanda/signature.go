package cartpandawebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/xmxsystem/webhook-backend/pkg/logger"
)

// SignatureVerifier authenticates inbound deliveries against the
// CartPanda shared secret.
type SignatureVerifier struct {
	secret string
	logg   *logger.Logger
}

func NewSignatureVerifier(secret string, logg *logger.Logger) *SignatureVerifier {
	return &SignatureVerifier{secret: secret, logg: logg}
}

// Verify checks the hex HMAC-SHA256 of the exact raw body bytes against
// the header-supplied signature. It must run before any JSON decoding:
// re-serialization can change the bytes and invalidate the signature.
// A missing header and an unconfigured secret both fail verification;
// the latter is logged as a server misconfiguration.
func (v *SignatureVerifier) Verify(ctx context.Context, payload []byte, signature string) bool {
	if signature == "" {
		if v.logg != nil {
			v.logg.Warn(ctx, "webhook.signature_missing")
		}
		return false
	}
	if v.secret == "" {
		if v.logg != nil {
			v.logg.Error(ctx, "webhook.secret_not_configured", nil)
		}
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	// hmac.Equal, not ==: an early-exit comparison leaks timing usable
	// to forge signatures byte by byte
	valid := hmac.Equal([]byte(expected), []byte(signature))
	if !valid && v.logg != nil {
		v.logg.Warn(ctx, "webhook.signature_invalid")
	}
	return valid
}
