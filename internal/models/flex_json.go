package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt decodes an integer that upstream payloads may send as a JSON number,
// a quoted string, or null. Missing, null and empty values decode to zero.
type FlexInt int

// UnmarshalJSON implements flexible JSON unmarshaling that accepts both
// string-encoded and native JSON numbers.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	// Fast path: native integer
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexInt(i)
		return nil
	}

	// Slow path: quoted or fractional value
	var s string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flex int: %w", err)
		}
	} else {
		s = string(data)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(fl) || math.IsInf(fl, 0) {
		return fmt.Errorf("flex int: cannot decode %q", s)
	}
	*f = FlexInt(math.Trunc(fl))
	return nil
}

// Int returns the plain int value.
func (f FlexInt) Int() int { return int(f) }

// FlexString decodes a string that may arrive as a JSON number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("flex string: %w", err)
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(string(data))
	return nil
}

func (f FlexString) String() string { return string(f) }
