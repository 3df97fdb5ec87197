package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseInput parses a comma- or whitespace-separated list of integers,
// e.g. "19, 28, 37" or "19 28 37". An empty string yields an empty
// (valid) input. Any non-integer token is an InvalidInputError.
func ParseInput(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	values := make([]int64, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			reason := "not an integer"
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
				reason = "out of int64 range"
			}
			return nil, NewInvalidInputError(i, field, reason)
		}
		values = append(values, v)
	}
	return values, nil
}

// CoerceValues converts loosely typed values (as decoded from YAML or
// JSON scenario files) into int64 input. Floats are rejected outright:
// traces are canonically hashed, and floats break that determinism.
func CoerceValues(raw []any) ([]int64, error) {
	values := make([]int64, 0, len(raw))
	for i, v := range raw {
		switch val := v.(type) {
		case int:
			values = append(values, int64(val))
		case int64:
			values = append(values, val)
		case uint64:
			if val > 1<<63-1 {
				return nil, NewInvalidInputError(i, strconv.FormatUint(val, 10), "out of int64 range")
			}
			values = append(values, int64(val))
		case float64:
			return nil, NewInvalidInputError(i, strconv.FormatFloat(val, 'g', -1, 64), "floats are not allowed")
		default:
			return nil, NewInvalidInputError(i, fmt.Sprintf("%v", v), "not an integer")
		}
	}
	return values, nil
}
