// Package core holds the inventory domain model and the pure
// filter/aggregation functions derived from it.
//
// This file contains money parsing and handling. Amounts are stored as
// integer cents; decimal dollar values only appear at the edges (JSON
// snapshots, CSV files, request payloads).
package core

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in cents.
type Money struct {
	Cents int64
}

// Dollars returns the amount as a float64 for display and JSON encoding.
// Use cents for arithmetic to avoid floating-point drift.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount as a plain decimal, e.g. "12.34" or "500".
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10)
	if rem := cents % 100; rem != 0 {
		s += "." + pad2(rem)
	}
	if neg {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// MarshalJSON encodes the amount as a JSON number in dollars, matching
// the snapshot format of the persisted collections.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a string (optionally with a
// currency symbol, as produced by some exports).
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		m.Cents = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = unquoted
	}
	cents, err := ParsePrice(s)
	if err != nil {
		return err
	}
	m.Cents = cents
	return nil
}

// ParsePrice converts a decimal price string to cents with half-up
// rounding on the third decimal place. It accepts dot and comma decimal
// separators, a leading currency symbol ("$500", "€12,34"), and thousands
// separators ("1,299.00"). Empty input and zero are valid (price 0);
// negative values are not.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	// Strip a leading currency marker.
	for _, prefix := range []string{"$", "€", "£", "USD", "EUR"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeAmount
	}
	s = strings.TrimPrefix(s, "+")
	// "1,299.00" uses commas for thousands; "12,34" uses the comma as the
	// decimal separator. A comma followed by exactly two digits at the end
	// with no dot present is treated as decimal.
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else if i := strings.LastIndex(s, ","); i >= 0 && len(s)-i-1 == 2 {
		s = strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidPrice
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidPrice
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if iv > math.MaxInt64/100 {
		return 0, ErrInvalidPrice
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// ErrInvalidPrice reports a price string that could not be parsed.
var ErrInvalidPrice = errors.New("invalid price")
