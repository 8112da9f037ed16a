package initdata

import (
	"fmt"
	"net/url"
	"strings"
)

// Field is a single decoded key/value pair.
type Field struct {
	Key   string
	Value string
}

// Fields is the decoded form of an init data string: an ordered list of
// pairs with at most one value per key. It is built fresh per call and never
// shared, so no locking is needed anywhere in this package.
type Fields []Field

// Get returns the value for key and whether it was present.
func (f Fields) Get(key string) (string, bool) {
	for _, p := range f {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Set replaces the value for key, appending the pair if key is absent.
func (f *Fields) Set(key, value string) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// without returns a copy of f with the given keys removed.
func (f Fields) without(keys ...string) Fields {
	out := make(Fields, 0, len(f))
	for _, p := range f {
		skip := false
		for _, k := range keys {
			if p.Key == k {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, p)
		}
	}
	return out
}

// Decode splits a raw init data string into Fields. Segments are separated
// by '&'; each segment splits on the first '='. A segment without '=' is a
// key with an empty value. Keys and values are percent-decoded
// independently; duplicate keys keep the last occurrence. The only decode
// failure is an invalid percent escape.
func Decode(raw string) (Fields, error) {
	fields := make(Fields, 0, 8)
	for _, seg := range strings.Split(raw, "&") {
		if seg == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(seg, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: bad escape in key %q", ErrMalformedInput, rawKey)
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			return nil, fmt.Errorf("%w: bad escape in value of %q", ErrMalformedInput, key)
		}
		fields.Set(key, val)
	}
	return fields, nil
}

// Encode renders Fields back into wire form, percent-encoding keys and
// values with the same rules Decode reverses. Decode(Encode(f)) == f for any
// f produced by Decode.
func Encode(fields Fields) string {
	var sb strings.Builder
	for i, p := range fields {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
