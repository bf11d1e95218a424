package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a relation field as delivered by the CMS: either a bare identifier
// that was never expanded, or the populated document itself. Which of the two
// it holds is decided once, when the JSON is decoded.
type Ref[T any] struct {
	id    string
	value *T
}

// Unresolved returns a reference that only carries the target's id.
func Unresolved[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// Resolved returns a reference holding the populated document.
func Resolved[T any](v T) Ref[T] {
	return Ref[T]{value: &v}
}

// Value returns the populated document and true, or the zero value and false
// when the reference was left unexpanded.
func (r Ref[T]) Value() (T, bool) {
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

// ID is the raw identifier of an unresolved reference.
func (r Ref[T]) ID() string { return r.id }

func (r Ref[T]) IsResolved() bool { return r.value != nil }

// IsZero reports whether the field was absent or null.
func (r Ref[T]) IsZero() bool { return r.value == nil && r.id == "" }

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*r = Ref[T]{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		r.id = s
		return nil
	case '{':
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		r.value = &v
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("relation must be an id or an object, got %s", truncate(b, 32))
		}
		r.id = n.String()
		return nil
	}
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.value != nil {
		return json.Marshal(r.value)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

// ResolvedValues keeps the populated entries of refs in order.
func ResolvedValues[T any](refs []Ref[T]) []T {
	out := make([]T, 0, len(refs))
	for _, r := range refs {
		if v, ok := r.Value(); ok {
			out = append(out, v)
		}
	}
	return out
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
