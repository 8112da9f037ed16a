package initdata

import (
	"sort"
	"strings"
)

// Canonicalize builds the byte sequence a signature is computed over:
// drop the excluded keys, sort the rest byte-wise by key, render each pair
// as key=value with the value exactly as decoded, and join with a single
// newline. No trailing separator. The result is fully determined by its
// input, which is what makes signatures reproducible across processes.
//
// Returns ErrEmptyPayload if nothing is left after exclusion: signing an
// empty string would look valid while covering nothing.
func Canonicalize(fields Fields, exclude ...string) (string, error) {
	remaining := fields.without(exclude...)
	if len(remaining) == 0 {
		return "", ErrEmptyPayload
	}

	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].Key < remaining[j].Key
	})

	parts := make([]string, len(remaining))
	for i, p := range remaining {
		parts[i] = p.Key + "=" + p.Value
	}
	return strings.Join(parts, "\n"), nil
}
