package initdata

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"testing"
)

// swapKeys replaces the embedded platform keys with freshly generated pairs
// so tests can produce signatures for both environments. Restored on
// cleanup.
func swapKeys(t *testing.T) (prodPriv, testPriv ed25519.PrivateKey) {
	t.Helper()
	prodPub, prodPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate production key: %v", err)
	}
	testPub, testPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate test key: %v", err)
	}
	orig := thirdPartyKeys
	thirdPartyKeys = map[Environment]ed25519.PublicKey{
		EnvProduction: prodPub,
		EnvTest:       testPub,
	}
	t.Cleanup(func() { thirdPartyKeys = orig })
	return prodPriv, testPriv
}

// sign3rd builds the platform-side signature for fields, the way the
// platform would before handing the payload to a Mini App.
func sign3rd(t *testing.T, fields Fields, botID int64, priv ed25519.PrivateKey) Fields {
	t.Helper()
	canon, err := Canonicalize(fields, "hash", "signature")
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	base := strconv.FormatInt(botID, 10) + ":WebAppData\n" + canon
	sig := ed25519.Sign(priv, []byte(base))
	signed := append(Fields{}, fields...)
	signed.Set("signature", base64.RawURLEncoding.EncodeToString(sig))
	return signed
}

func TestVerifySignature3rd_Roundtrip(t *testing.T) {
	_, testPriv := swapKeys(t)
	const botID = 7342037359

	signed := sign3rd(t, fixtureFields, botID, testPriv)
	if err := verifySignature3rd(signed, botID, EnvTest); err != nil {
		t.Errorf("verifySignature3rd() error = %v, want nil", err)
	}
}

func TestVerifySignature3rd_EnvironmentMismatch(t *testing.T) {
	_, testPriv := swapKeys(t)
	const botID = 7342037359

	// Signed with the test-environment key: must fail under production and
	// pass under test for the same payload.
	signed := sign3rd(t, fixtureFields, botID, testPriv)
	if err := verifySignature3rd(signed, botID, EnvProduction); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("production verify error = %v, want ErrSignatureInvalid", err)
	}
	if err := verifySignature3rd(signed, botID, EnvTest); err != nil {
		t.Errorf("test verify error = %v, want nil", err)
	}
}

func TestVerifySignature3rd_WrongBotID(t *testing.T) {
	_, testPriv := swapKeys(t)
	signed := sign3rd(t, fixtureFields, 1, testPriv)
	if err := verifySignature3rd(signed, 2, EnvTest); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("error = %v, want ErrSignatureInvalid for wrong bot id", err)
	}
}

func TestVerifySignature3rd_MissingSignature(t *testing.T) {
	swapKeys(t)
	if err := verifySignature3rd(fixtureFields, 1, EnvTest); !errors.Is(err, ErrSignatureMissing) {
		t.Errorf("error = %v, want ErrSignatureMissing", err)
	}
}

func TestVerifySignature3rd_MalformedSignature(t *testing.T) {
	swapKeys(t)
	cases := []string{"!!!", "aGVsbG8", base64.RawURLEncoding.EncodeToString(make([]byte, 63))}
	for _, sig := range cases {
		fields := append(Fields{}, fixtureFields...)
		fields.Set("signature", sig)
		if err := verifySignature3rd(fields, 1, EnvTest); !errors.Is(err, ErrSignatureInvalid) {
			t.Errorf("signature %q: error = %v, want ErrSignatureInvalid", sig, err)
		}
	}
}

func TestResolvePublicKey_UnknownEnvironment(t *testing.T) {
	_, err := resolvePublicKey(Environment("staging"))
	if !errors.Is(err, ErrUnknownEnvironment) {
		t.Errorf("error = %v, want ErrUnknownEnvironment", err)
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error = %v, want it to unwrap to ErrConfiguration", err)
	}
}

func TestResolvePublicKey_EmbeddedKeys(t *testing.T) {
	for _, env := range []Environment{EnvProduction, EnvTest} {
		key, err := resolvePublicKey(env)
		if err != nil {
			t.Fatalf("resolvePublicKey(%s) error = %v", env, err)
		}
		if len(key) != ed25519.PublicKeySize {
			t.Errorf("key for %s has %d bytes, want %d", env, len(key), ed25519.PublicKeySize)
		}
	}
}
