// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// NotEnoughData is the sentinel phrase reports print in place of a headline
// percentage when a plot has insufficient samples. It normalizes to a missing
// Value, never to zero, since zero is a valid percentage.
const NotEnoughData = "Not enough data"

// Value is a percentage that may be missing. The zero Value is missing.
// Parsing happens once at the input boundary; downstream code never sees
// sentinel strings or stray "%" suffixes.
type Value struct {
	Num   float64
	Valid bool
}

// Numeric returns a present Value holding n.
func Numeric(n float64) Value {
	return Value{Num: n, Valid: true}
}

// Missing returns the missing Value.
func Missing() Value {
	return Value{}
}

// ParseValue converts headline or cell text into a Value. It strips a
// trailing "%" and surrounding whitespace, treats the empty string and the
// not-enough-data sentinel (with or without a trailing asterisk) as missing,
// and otherwise requires a signed decimal number.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing(), nil
	}
	if strings.Contains(s, NotEnoughData) {
		return Missing(), nil
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, "*"), "%")
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Missing(), fmt.Errorf("parsing value %q: %w", s, err)
	}
	return Numeric(n), nil
}

// String renders the value for tabular output: an empty string when missing,
// otherwise the shortest decimal representation.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

// MarshalYAML renders missing values as null.
func (v Value) MarshalYAML() (any, error) {
	if !v.Valid {
		return nil, nil
	}
	return v.Num, nil
}

// MarshalJSON renders missing values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v.Num, 'f', -1, 64)), nil
}
