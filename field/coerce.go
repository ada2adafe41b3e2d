package field

import (
	"math"
	"reflect"
)

const twoTo64 = float64(1 << 64)

// integer reports the sign and magnitude of an integer-valued Go value.
// Integral floats are accepted for values decoded from YAML or JSON.
func integer(val any) (mag uint64, neg bool, ok bool) {
	switch v := val.(type) {
	case int:
		return signed(int64(v))
	case int8:
		return signed(int64(v))
	case int16:
		return signed(int64(v))
	case int32:
		return signed(int64(v))
	case int64:
		return signed(v)
	case uint:
		return uint64(v), false, true
	case uint8:
		return uint64(v), false, true
	case uint16:
		return uint64(v), false, true
	case uint32:
		return uint64(v), false, true
	case uint64:
		return v, false, true
	case float64:
		return integral(v)
	case float32:
		return integral(float64(v))
	case nil, bool, string:
		return 0, false, false
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signed(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), false, true
	case reflect.Float32, reflect.Float64:
		return integral(rv.Float())
	}
	return 0, false, false
}

func signed(v int64) (uint64, bool, bool) {
	if v < 0 {
		return uint64(-v), true, true
	}
	return uint64(v), false, true
}

func integral(f float64) (uint64, bool, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false, false
	}
	if f >= 0 {
		if f >= twoTo64 {
			return 0, false, false
		}
		return uint64(f), false, true
	}
	if -f > twoTo64/2 {
		return 0, false, false
	}
	return uint64(-f), true, true
}

func boolean(val any) (bool, bool) {
	if b, ok := val.(bool); ok {
		return b, true
	}
	if val == nil {
		return false, false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Bool {
		return rv.Bool(), true
	}
	return false, false
}

func float(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case nil, bool, string:
		return 0, false
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	if mag, neg, ok := integer(val); ok {
		if neg {
			return -float64(mag), true
		}
		return float64(mag), true
	}
	return 0, false
}
