// Package initdata validates, parses and signs Telegram Mini App init data.
//
// Init data arrives as a single percent-encoded query string whose hash
// field is an HMAC-SHA256 signature under a secret derived from the bot
// token, and whose signature field (when present) is an Ed25519 signature
// by the platform itself, verifiable without the token.
//
// Every operation is a pure function over its input: no caches, no
// sessions, no shared state. Concurrent calls need no coordination. The bot
// token is held only for the duration of a call and is never logged.
package initdata

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DefaultExpiresIn is the freshness window applied when no options are
// given.
const DefaultExpiresIn = 24 * time.Hour

// Options tunes the expiration policy for Validate and IsValid.
type Options struct {
	// ExpiresIn is the maximum accepted age of auth_date. Zero or negative
	// means no expiration is enforced.
	ExpiresIn time.Duration

	// SkewAllowance tolerates auth_date values this far in the future,
	// covering clock drift between the platform and the verifier.
	SkewAllowance time.Duration
}

func (o *Options) orDefault() Options {
	if o == nil {
		return Options{ExpiresIn: DefaultExpiresIn}
	}
	return *o
}

// Validate authenticates raw against the bot token and checks freshness.
// It returns nil for a genuine, fresh payload, otherwise an error that
// unwraps to exactly one of the package sentinels. A forged payload and a
// stale one stay distinguishable: signature errors take precedence over
// expiration.
func Validate(raw, token string, opts *Options) error {
	if token == "" {
		return fmt.Errorf("%w: empty bot token", ErrConfiguration)
	}
	fields, err := Decode(raw)
	if err != nil {
		return err
	}
	authDate, err := requireAuthDate(fields)
	if err != nil {
		return err
	}
	if err := verifyHash(fields, token); err != nil {
		return err
	}
	o := opts.orDefault()
	return checkExpiration(authDate, o.ExpiresIn, o.SkewAllowance, time.Now())
}

// IsValid is the boolean gate over Validate: every failure, including
// misconfiguration, collapses to false. Call Validate where the failure
// kind matters.
func IsValid(raw, token string, opts *Options) bool {
	return Validate(raw, token, opts) == nil
}

// Validate3rd authenticates raw using the platform's public key for env
// instead of the bot token, then checks freshness. Intended for verifiers
// that must not hold the bot token.
func Validate3rd(raw string, botID int64, env Environment, opts *Options) error {
	fields, err := Decode(raw)
	if err != nil {
		return err
	}
	authDate, err := requireAuthDate(fields)
	if err != nil {
		return err
	}
	if err := verifySignature3rd(fields, botID, env); err != nil {
		return err
	}
	o := opts.orDefault()
	return checkExpiration(authDate, o.ExpiresIn, o.SkewAllowance, time.Now())
}

// IsValid3rd is the boolean gate over Validate3rd.
func IsValid3rd(raw string, botID int64, env Environment, opts *Options) bool {
	return Validate3rd(raw, botID, env, opts) == nil
}

// Sign builds a signed init data string from caller-supplied fields, for
// development and testing. It stamps auth_date from at, computes the hash
// under token and returns the wire-encoded result. Any hash or auth_date in
// fields is replaced.
func Sign(fields map[string]string, token string, at time.Time) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty bot token", ErrConfiguration)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == hashField || k == "auth_date" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Fields, 0, len(keys)+2)
	for _, k := range keys {
		out = append(out, Field{Key: k, Value: fields[k]})
	}
	out = append(out, Field{Key: "auth_date", Value: strconv.FormatInt(at.Unix(), 10)})

	hash, err := signFields(out, token)
	if err != nil {
		return "", err
	}
	out = append(out, Field{Key: hashField, Value: hash})
	return Encode(out), nil
}

// requireAuthDate enforces the auth_date invariant shared by the validate
// operations: present and a non-negative integer. Its absence is malformed
// input, not a signature problem, even when the signature would verify.
func requireAuthDate(fields Fields) (time.Time, error) {
	v, ok := fields.Get("auth_date")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: missing auth_date", ErrMalformedInput)
	}
	unix, err := parseIntField("auth_date", v)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0), nil
}
