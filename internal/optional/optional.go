// Package optional holds a value that may be absent.
//
// Unlike a nil slice or a zero string, an absent Value is distinguishable
// from a present empty one: "tags": [] decodes to a present empty slice,
// while a missing "tags" key (or "tags": null) decodes to an absent Value.
// Struct fields should be tagged `json:",omitzero"` so that absent values
// are left out on encode instead of being written as null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is either absent or holds a T.
type Value[T any] struct {
	v  T
	ok bool
}

// Of returns a present Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// None returns an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Get returns the held value and whether it is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

// IsSet reports whether the value is present.
func (o Value[T]) IsSet() bool { return o.ok }

// IsZero reports whether the value is absent. encoding/json consults it for omitzero.
func (o Value[T]) IsZero() bool { return !o.ok }

// OrElse returns the held value, or def when absent.
func (o Value[T]) OrElse(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Value[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Value[T]{v: v, ok: true}
	return nil
}
