package model

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// lenientInt and lenientFloat decode JSON numbers as well as numeric strings,
// which the PHP backend emits for database columns. null leaves the zero value.

type lenientInt int

// UnmarshalJSON rejects fractional values.
func (n *lenientInt) UnmarshalJSON(b []byte) error {
	s, ok := unquoteNumber(b)
	if !ok {
		return nil
	}

	if v, err := strconv.Atoi(s); err == nil {
		*n = lenientInt(v)
		return nil
	}

	// "7.0" is accepted, "7.9" is not
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid integer %s", b)
	}
	*n = lenientInt(int(f))
	return nil
}

type lenientFloat float64

// UnmarshalJSON reads a quoted or bare number.
func (n *lenientFloat) UnmarshalJSON(b []byte) error {
	s, ok := unquoteNumber(b)
	if !ok {
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	*n = lenientFloat(f)
	return nil
}

func unquoteNumber(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", false
	}
	b = bytes.Trim(b, `"`)
	if len(b) == 0 {
		return "", false
	}
	return string(b), true
}

func intPtr(n *lenientInt) *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}
