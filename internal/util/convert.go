package util

import (
	"errors"
	"fmt"
	"math"
)

var errNegativeToUnsigned = errors.New("negative value for unsigned type")

// ToInt64 converts any Go integer value to int64.
//
// Unsigned values larger than math.MaxInt64 are rejected.
func ToInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt64(v)
	default:
		return 0, fmt.Errorf("cannot convert %T to int64", value)
	}
}

// ToUint64 converts any Go integer value to uint64.
//
// Negative values are rejected.
func ToUint64(value any) (uint64, error) {
	switch v := value.(type) {
	case int:
		return intToUint64(int64(v))
	case int8:
		return intToUint64(int64(v))
	case int16:
		return intToUint64(int64(v))
	case int32:
		return intToUint64(int64(v))
	case int64:
		return intToUint64(v)
	case uint:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to uint64", value)
	}
}

// ToFloat64 converts any Go numeric value to float64.
//
// Integer conversions may lose precision beyond 2^53; no range check is
// performed for them.
func ToFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", value)
	}
}

func uintToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%d overflows int64", v)
	}

	return int64(v), nil
}

func intToUint64(v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d", errNegativeToUnsigned, v)
	}

	return uint64(v), nil
}
