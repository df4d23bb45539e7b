// internal/form/csrf.go
//
// Linkpage – Forms: stateless CSRF tokens.
//
// Context
//   The contact modal embeds a hidden `csrf_token` input generated at render
//   time.  POST /contact verifies it so only forms this server rendered for
//   this visitor are accepted.  Tokens are stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, session|nonce|unixMicro) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – issue time, 8 bytes, big-endian.
//   •  HMAC – keyed with security.csrf_key and bound to the session ID.
//
// Workflow
//   •  NewCSRF(key)                → one instance per process.
//   •  Generate(sessionID)         → token string for the renderer.
//   •  Verify(token, sessionID)    → constant-time check; false on any failure.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"time"

	"go.uber.org/zap"
)

// CSRFField is the hidden input name.
const CSRFField = "csrf_token"

const (
	nonceBytes = 16
	tsBytes    = 8
	tokenBytes = nonceBytes + tsBytes + sha256.Size
	maxAge     = 2 * time.Hour
	maxSkew    = time.Minute
)

// CSRF issues and checks tokens.  Safe for concurrent use.
type CSRF struct {
	key []byte
	now func() time.Time
}

// NewCSRF returns a token issuer.  An empty key yields a random per-process
// key; tokens then die on restart.
func NewCSRF(key string) *CSRF {
	k := []byte(key)
	if len(k) == 0 {
		k = make([]byte, 32)
		_, _ = rand.Read(k)
		zap.S().Warnw("security.csrf_key not set, using random key")
	}
	return &CSRF{key: k, now: time.Now}
}

// Generate creates a token bound to sessionID.
func (c *CSRF) Generate(sessionID string) (string, error) {
	buf := make([]byte, nonceBytes+tsBytes, tokenBytes)
	if _, err := rand.Read(buf[:nonceBytes]); err != nil {
		return "", err
	}
	binary.BigEndian.PutUint64(buf[nonceBytes:], uint64(c.now().UnixMicro()))
	buf = append(buf, c.sign(sessionID, buf[:nonceBytes+tsBytes])...)
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify reports whether tok is authentic, fresh, and issued for sessionID.
func (c *CSRF) Verify(tok, sessionID string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(raw[nonceBytes : nonceBytes+tsBytes])))
	now := c.now()
	if now.Sub(issued) > maxAge || issued.Sub(now) > maxSkew {
		return false
	}

	want := c.sign(sessionID, raw[:nonceBytes+tsBytes])
	return hmac.Equal(raw[nonceBytes+tsBytes:], want)
}

func (c *CSRF) sign(sessionID string, payload []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(sessionID))
	mac.Write([]byte{0})
	mac.Write(payload)
	return mac.Sum(nil)
}
