package initdata

import "time"

// checkExpiration applies the freshness policy to an auth timestamp.
//
// A payload passes when its age (now minus authDate) does not exceed
// expiresIn, and authDate is not further in the future than skew allows.
// expiresIn <= 0 means no expiration is enforced; the future-timestamp check
// still applies, since a timestamp from the future is implausible whether or
// not staleness matters to the caller.
func checkExpiration(authDate time.Time, expiresIn, skew time.Duration, now time.Time) error {
	age := now.Sub(authDate)
	if authDate.After(now.Add(skew)) {
		return &ExpiredError{Age: age, ExpiresIn: expiresIn}
	}
	if expiresIn > 0 && age > expiresIn {
		return &ExpiredError{Age: age, ExpiresIn: expiresIn}
	}
	return nil
}
