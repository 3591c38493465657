// Package schema defines request and response payloads for the JSON API.
package schema

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON field was present and whether it was null,
// so PATCH bodies can tell "absent" from "cleared".
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a present, non-null Optional.
func Of[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler. It is only called for keys present in the body.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns nil for an absent or null Optional, otherwise a pointer to a copy of the value.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
