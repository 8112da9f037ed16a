package initdata

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Environment selects which platform public key verifies third-party
// signatures.
type Environment string

const (
	EnvProduction Environment = "production"
	EnvTest       Environment = "test"
)

// signatureField is the wire name of the platform's Ed25519 signature.
const signatureField = "signature"

// Platform Ed25519 public keys, hex-encoded, as published by Telegram for
// third-party init data verification.
const (
	productionKeyHex = "e7bf03a2fa4602af4580703d88dda5bb59f32ed8b02a56c187fe7d34caed242d"
	testKeyHex       = "40055058a4ee38156a06562e52eece92a771bcd8346a8c4615cb7376eddf72ec"
)

// thirdPartyKeys maps each environment to its verification key. Tests in
// this package swap entries to exercise the verification path with keys
// they hold the private half of.
var thirdPartyKeys = map[Environment]ed25519.PublicKey{
	EnvProduction: mustHexKey(productionKeyHex),
	EnvTest:       mustHexKey(testKeyHex),
}

func mustHexKey(s string) ed25519.PublicKey {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != ed25519.PublicKeySize {
		panic("initdata: bad embedded public key")
	}
	return ed25519.PublicKey(b)
}

// resolvePublicKey returns the platform key for env. An unrecognized
// environment is a caller misconfiguration, never coerced into "invalid".
func resolvePublicKey(env Environment) (ed25519.PublicKey, error) {
	key, ok := thirdPartyKeys[env]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEnvironment, string(env))
	}
	return key, nil
}

// verifySignature3rd checks the platform's Ed25519 signature over fields.
//
// The signed string is the usual canonical form minus both signature fields,
// prefixed with a "{botID}:WebAppData" line. The signature field carries the
// raw 64-byte signature in unpadded base64url.
func verifySignature3rd(fields Fields, botID int64, env Environment) error {
	key, err := resolvePublicKey(env)
	if err != nil {
		return err
	}

	supplied, ok := fields.Get(signatureField)
	if !ok {
		return ErrSignatureMissing
	}
	sig, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(supplied, "="))
	if err != nil {
		return fmt.Errorf("%w: signature is not valid base64url", ErrSignatureInvalid)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: signature is %d bytes, want %d", ErrSignatureInvalid, len(sig), ed25519.SignatureSize)
	}

	canon, err := Canonicalize(fields, hashField, signatureField)
	if err != nil {
		return err
	}
	base := strconv.FormatInt(botID, 10) + ":" + keyLabel + "\n" + canon

	if !ed25519.Verify(key, []byte(base), sig) {
		return ErrSignatureInvalid
	}
	return nil
}
