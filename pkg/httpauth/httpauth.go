// Package httpauth authenticates HTTP requests carrying Telegram Mini App
// init data. It extracts the raw init data from a request header, validates
// it through pkg/initdata and exposes the parsed payload via the request
// context. Mapping failure kinds to status codes happens here, not in the
// core.
package httpauth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/initguard/initguard/pkg/initdata"
)

// DefaultHeader is the custom header consulted when no Authorization scheme
// is used.
const DefaultHeader = "X-Telegram-Init-Data"

// Scheme is the Authorization scheme conventionally used for init data.
const Scheme = "tma"

type contextKey struct{}

// Config configures the middleware.
type Config struct {
	// Token is the bot token used for validation. Required.
	Token string

	// Header names the custom header carrying raw init data. Defaults to
	// DefaultHeader. The Authorization header ("tma <raw>" or
	// "Bearer <raw>") is always consulted first.
	Header string

	// Options tunes the expiration policy; nil applies the library default.
	Options *initdata.Options

	// Optional lets unauthenticated requests through without an identity in
	// the context instead of rejecting them.
	Optional bool

	// Logger receives one structured line per rejected request. The init
	// data and token are never logged. Nil disables logging.
	Logger *zap.SugaredLogger
}

// Middleware wraps next with init data authentication per cfg. On success
// the parsed payload is available through FromContext.
func Middleware(cfg Config, next http.Handler) http.Handler {
	header := cfg.Header
	if header == "" {
		header = DefaultHeader
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extract(r, header)
		if raw == "" {
			if cfg.Optional {
				next.ServeHTTP(w, r)
				return
			}
			reject(w, cfg.Logger, http.StatusUnauthorized, "missing init data", nil)
			return
		}

		if err := initdata.Validate(raw, cfg.Token, cfg.Options); err != nil {
			reject(w, cfg.Logger, statusFor(err), "init data rejected", err)
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			reject(w, cfg.Logger, http.StatusBadRequest, "init data unparseable", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, parsed)))
	})
}

// FromContext returns the authenticated init data stored by Middleware.
func FromContext(ctx context.Context) (*initdata.InitData, bool) {
	d, ok := ctx.Value(contextKey{}).(*initdata.InitData)
	return d, ok
}

// extract pulls the raw init data string out of a request: Authorization
// with the tma or Bearer scheme first, then the custom header.
func extract(r *http.Request, header string) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, rest, ok := strings.Cut(auth, " ")
		if ok {
			switch strings.ToLower(scheme) {
			case Scheme, "bearer":
				return strings.TrimSpace(rest)
			}
		}
	}
	return strings.TrimSpace(r.Header.Get(header))
}

// statusFor maps validation failure kinds to transport status codes.
// Malformed payloads are client errors; authentication and freshness
// failures are 401; misconfiguration is on us.
func statusFor(err error) int {
	switch {
	case errors.Is(err, initdata.ErrConfiguration):
		return http.StatusInternalServerError
	case errors.Is(err, initdata.ErrMalformedInput), errors.Is(err, initdata.ErrEmptyPayload):
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

func reject(w http.ResponseWriter, log *zap.SugaredLogger, status int, msg string, err error) {
	if log != nil {
		if err != nil {
			log.Warnw(msg, "status", status, "err", err.Error())
		} else {
			log.Warnw(msg, "status", status)
		}
	}
	http.Error(w, msg, status)
}
