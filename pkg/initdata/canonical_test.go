package initdata

import (
	"errors"
	"testing"
)

func TestCanonicalize_SortsAndJoins(t *testing.T) {
	fields := Fields{
		{Key: "query_id", Value: "AAA"},
		{Key: "auth_date", Value: "1700000000"},
		{Key: "hash", Value: "deadbeef"},
		{Key: "user", Value: `{"id":1}`},
	}
	got, err := Canonicalize(fields, "hash")
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	want := "auth_date=1700000000\nquery_id=AAA\nuser={\"id\":1}"
	if got != want {
		t.Errorf("canonical = %q, want %q", got, want)
	}
}

func TestCanonicalize_ByteWiseOrder(t *testing.T) {
	// 'Z' (0x5a) sorts before 'a' (0x61) byte-wise; no locale collation.
	fields := Fields{
		{Key: "a", Value: "1"},
		{Key: "Z", Value: "2"},
	}
	got, err := Canonicalize(fields)
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	if got != "Z=2\na=1" {
		t.Errorf("canonical = %q, want byte-wise order", got)
	}
}

func TestCanonicalize_Deterministic(t *testing.T) {
	fields := Fields{
		{Key: "b", Value: "2"},
		{Key: "a", Value: "1"},
		{Key: "c", Value: "3"},
	}
	first, err := Canonicalize(fields, "hash")
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Canonicalize(fields, "hash")
		if err != nil {
			t.Fatalf("Canonicalize() error = %v", err)
		}
		if again != first {
			t.Fatalf("canonical forms differ across calls:\n%s\n!=\n%s", again, first)
		}
	}
}

func TestCanonicalize_EmptyAfterExclusion(t *testing.T) {
	fields := Fields{{Key: "hash", Value: "abc"}}
	if _, err := Canonicalize(fields, "hash"); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("error = %v, want ErrEmptyPayload", err)
	}
	if _, err := Canonicalize(nil); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("error = %v, want ErrEmptyPayload for nil fields", err)
	}
}
