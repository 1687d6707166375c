package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CreateRequest is a decoded POST /vlans body.
type CreateRequest struct {
	ID   int64  `json:"id" validate:"vlanid"`
	Name string `json:"name,omitempty"`
}

// DecodeCreateRequest parses a create payload. Checks run in order and stop
// at the first failure: well-formed object, id present, id an integer, name a
// string. Range and uniqueness are checked by Registry.Create.
func DecodeCreateRequest(data []byte) (CreateRequest, error) {
	var req CreateRequest

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if fields == nil {
		return req, fmt.Errorf("%w: body must be a JSON object", ErrInvalidRequest)
	}

	raw, ok := fields["id"]
	if !ok {
		return req, missingField("id")
	}

	id, err := coerceID(raw)
	if err != nil {
		return req, err
	}
	req.ID = id

	if rawName, ok := fields["name"]; ok && !isNull(rawName) {
		if err := json.Unmarshal(rawName, &req.Name); err != nil {
			return req, invalidType("name", "must be a string")
		}
	}

	return req, nil
}

// coerceID accepts JSON integers, integral floats and decimal strings.
// Booleans, null, fractional numbers and non-numeric strings are rejected.
func coerceID(raw json.RawMessage) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, invalidType("id", "must be an integer")
	}

	switch val := v.(type) {
	case json.Number:
		return numberToInt(string(val))
	case string:
		s := strings.TrimSpace(val)
		id, err := strconv.ParseInt(s, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return saturate(s), nil
		}
		if err != nil {
			return 0, invalidType("id", fmt.Sprintf("%q is not an integer", val))
		}
		return id, nil
	default:
		return 0, invalidType("id", fmt.Sprintf("must be an integer, got %s", jsonKind(v)))
	}
}

func numberToInt(s string) (int64, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f >= math.MaxInt64 || f <= math.MinInt64 {
		return saturate(s), nil
	}
	if !isIntegralLiteral(s) {
		return 0, invalidType("id", fmt.Sprintf("%s is not an integer", s))
	}
	return int64(f), nil
}

// isIntegralLiteral reports whether a JSON number literal denotes a whole
// number. The decision is made on the digits, since float64 rounds values
// such as 100.00000000000001 to 100.
func isIntegralLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")

	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.Atoi(strings.TrimPrefix(s[i+1:], "+"))
		if err != nil {
			// Only an enormous negative exponent gets here; the value is zero
			// or a fraction.
			return strings.Trim(mantissa, "0.") == ""
		}
		exp = e
	}

	digits, scale := mantissa, 0
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		digits = mantissa[:i] + mantissa[i+1:]
		scale = len(mantissa) - i - 1
	}

	// value = digits * 10^(exp-scale); trailing zeros lower the scale.
	trimmed := strings.TrimRight(digits, "0")
	if strings.Trim(trimmed, "0") == "" {
		return true
	}
	scale -= len(digits) - len(trimmed)
	return scale <= exp
}

// saturate maps an overflowing numeric literal to the nearest int64 bound so
// the range check rejects it.
func saturate(s string) int64 {
	if strings.HasPrefix(s, "-") {
		return math.MinInt64
	}
	return math.MaxInt64
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
