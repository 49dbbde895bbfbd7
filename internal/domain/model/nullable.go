package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// The Null* scalars decode leniently: null, a missing key, or a value of the
// wrong shape leaves them invalid instead of failing the whole document.
// Numeric strings coerce to numbers and numbers coerce to strings.

// NullFloat is an optional float64.
type NullFloat struct {
	Value float64
	Valid bool
}

// NullInt is an optional int64.
type NullInt struct {
	Value int64
	Valid bool
}

// NullString is an optional string.
type NullString struct {
	Value string
	Valid bool
}

// NullBool is an optional bool.
type NullBool struct {
	Value bool
	Valid bool
}

// Float returns a valid NullFloat.
func Float(v float64) NullFloat { return NullFloat{Value: v, Valid: true} }

// Int returns a valid NullInt.
func Int(v int64) NullInt { return NullInt{Value: v, Valid: true} }

// String returns a valid NullString.
func String(v string) NullString { return NullString{Value: v, Valid: true} }

// Bool returns a valid NullBool.
func Bool(v bool) NullBool { return NullBool{Value: v, Valid: true} }

type scalarKind int

const (
	kindNone scalarKind = iota
	kindString
	kindNumber
	kindBool
)

// scalar classifies a raw JSON value and returns its text form.
func scalar(b []byte) (scalarKind, string) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return kindNone, ""
	}
	switch c := b[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return kindNone, ""
		}
		return kindString, s
	case c == 't' || c == 'f':
		if bytes.Equal(b, []byte("true")) || bytes.Equal(b, []byte("false")) {
			return kindBool, string(b)
		}
	case c == '-' || (c >= '0' && c <= '9'):
		return kindNumber, string(b)
	}
	return kindNone, ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullFloat) UnmarshalJSON(b []byte) error {
	*n = NullFloat{}
	kind, s := scalar(b)
	if kind != kindNumber && kind != kindString {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = Float(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}

// String renders the value, or "" when absent.
func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullInt) UnmarshalJSON(b []byte) error {
	*n = NullInt{}
	kind, s := scalar(b)
	if kind != kindNumber && kind != kindString {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = Int(v)
		return nil
	}
	// 3.0 is still an integer.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return nil
	}
	*n = Int(int64(f))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullInt) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(n.Value, 10)), nil
}

// String renders the value, or "" when absent.
func (n NullInt) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Value, 10)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullString) UnmarshalJSON(b []byte) error {
	*n = NullString{}
	kind, s := scalar(b)
	if kind != kindString && kind != kindNumber {
		return nil
	}
	*n = String(s)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// String renders the value, or "" when absent.
func (n NullString) String() string {
	return n.Value
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullBool) UnmarshalJSON(b []byte) error {
	*n = NullBool{}
	kind, s := scalar(b)
	if kind != kindBool && kind != kindString {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	*n = Bool(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullBool) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatBool(n.Value)), nil
}

// True reports whether the value is present and true.
func (n NullBool) True() bool {
	return n.Valid && n.Value
}
