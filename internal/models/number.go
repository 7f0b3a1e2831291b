package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a form number that also accepts a numeric string on the wire,
// since browser form fields post their values as text. An empty string or
// null decodes to 0.
type Amount float64

// UnmarshalJSON accepts 500000, "500000" and "".
func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := parseLenientNumber(data)
	if err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// Months is a whole number of months accepting the same encodings as Amount
type Months int

// UnmarshalJSON accepts 240, 240.0, "240" and "".
func (m *Months) UnmarshalJSON(data []byte) error {
	v, err := parseLenientNumber(data)
	if err != nil {
		return err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return fmt.Errorf("months must be a whole number, got %v", v)
	}
	*m = Months(v)
	return nil
}

func parseLenientNumber(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return 0, nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return v, nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	return v, nil
}
