package initdata

import (
	"errors"
	"fmt"
	"time"
)

// Validation failures form a closed set so callers can branch exhaustively
// with errors.Is. Every error returned by this package unwraps to exactly
// one of these sentinels.
var (
	// ErrMalformedInput marks structurally invalid input: broken percent
	// encoding, or a recognized field whose value has the wrong shape.
	ErrMalformedInput = errors.New("malformed init data")

	// ErrSignatureMissing means the payload carries no signature field at all.
	ErrSignatureMissing = errors.New("init data signature missing")

	// ErrSignatureInvalid means a signature was present but did not verify.
	ErrSignatureInvalid = errors.New("init data signature mismatch")

	// ErrExpired means the signature verified but auth_date is outside the
	// allowed window.
	ErrExpired = errors.New("init data expired")

	// ErrEmptyPayload means there was nothing left to sign after excluding
	// the signature fields.
	ErrEmptyPayload = errors.New("empty init data payload")

	// ErrConfiguration marks caller misconfiguration (empty token, unknown
	// environment). These indicate a deployment bug, not a bad payload.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownEnvironment is a configuration error: the environment tag
	// matched neither production nor test.
	ErrUnknownEnvironment = fmt.Errorf("%w: unknown environment", ErrConfiguration)
)

// ExpiredError carries the computed age for diagnostics. It unwraps to
// ErrExpired.
type ExpiredError struct {
	Age       time.Duration // now minus auth_date; negative if auth_date is in the future
	ExpiresIn time.Duration
}

func (e *ExpiredError) Error() string {
	if e.Age < 0 {
		return fmt.Sprintf("init data expired: auth_date is %s in the future", -e.Age)
	}
	return fmt.Sprintf("init data expired: age %s exceeds %s", e.Age, e.ExpiresIn)
}

func (e *ExpiredError) Unwrap() error { return ErrExpired }
