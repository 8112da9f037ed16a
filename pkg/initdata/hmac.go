package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// keyLabel is the fixed HMAC key used to derive the signing secret from the
// bot token, per the platform's Mini App scheme. The token itself is never
// used directly as the HMAC key.
const keyLabel = "WebAppData"

// hashField is the wire name of the shared-secret signature.
const hashField = "hash"

// HashToken derives the HMAC-SHA256 signing secret from a bot token.
func HashToken(token string) []byte {
	mac := hmac.New(sha256.New, []byte(keyLabel))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

// SignPayload computes the lowercase hex HMAC-SHA256 digest of an arbitrary
// payload under the secret derived from token. Exposed for interop checks
// against other implementations of the same scheme.
func SignPayload(payload, token string) string {
	mac := hmac.New(sha256.New, HashToken(token))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// signFields canonicalizes fields (minus the hash field) and signs the
// result.
func signFields(fields Fields, token string) (string, error) {
	canon, err := Canonicalize(fields, hashField)
	if err != nil {
		return "", err
	}
	return SignPayload(canon, token), nil
}

// verifyHash recomputes the expected signature for fields and compares it
// against the supplied hash field.
//
// The comparison decodes the supplied hex into a fixed 32-byte buffer and
// runs crypto/subtle.ConstantTimeCompare against the expected digest. A
// supplied value of the wrong shape still goes through the same comparator
// (against a zero buffer) before rejection, so no code path returns faster
// for a longer matching prefix.
func verifyHash(fields Fields, token string) error {
	supplied, ok := fields.Get(hashField)
	if !ok {
		return ErrSignatureMissing
	}

	canon, err := Canonicalize(fields, hashField)
	if err != nil {
		return err
	}
	mac := hmac.New(sha256.New, HashToken(token))
	mac.Write([]byte(canon))
	expected := mac.Sum(nil)

	suppliedRaw, err := hex.DecodeString(strings.ToLower(supplied))
	if err != nil || len(suppliedRaw) != sha256.Size {
		subtle.ConstantTimeCompare(expected, make([]byte, sha256.Size))
		return fmt.Errorf("%w: hash is not a %d-byte hex digest", ErrSignatureInvalid, sha256.Size)
	}
	if subtle.ConstantTimeCompare(expected, suppliedRaw) != 1 {
		return ErrSignatureInvalid
	}
	return nil
}
