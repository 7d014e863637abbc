package calcspec

import (
	"fmt"
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the types that may appear in a
// canonicalizable structure. Only Null, String, Int, Float, Bool, Array,
// and Object implement it.
type Value interface {
	canonValue() // Sealed - only these types implement it
}

// Null represents an explicit null value, e.g. a keyword set to null.
// Distinct from an absent key: a Null keyword value serializes as JSON
// null, while absent keys never reach the encoder.
type Null struct{}

func (Null) canonValue() {}

// String represents a string value.
type String string

func (String) canonValue() {}

// Int represents an integer value. Always int64.
type Int int64

func (Int) canonValue() {}

// Float represents a floating-point value. Serialized with shortest
// round-trip formatting; NaN and infinities are rejected by the encoder.
type Float float64

func (Float) canonValue() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) canonValue() {}

// Array represents an ordered sequence of values. Element order is
// significant (e.g. command-line arguments).
type Array []Value

func (Array) canonValue() {}

// Object represents a mapping of string keys to values. Insertion order is
// irrelevant; use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) canonValue() {}

// SortedKeys returns keys in canonical order (UTF-16 code units, per
// RFC 8785). Go's sort.Strings compares UTF-8 bytes, which produces a
// different order for strings containing supplementary-plane characters.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

// compareKeysUTF16 compares strings by UTF-16 code units as required by
// RFC 8785. unicode/utf16.Encode handles surrogate pairs correctly.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	// All compared units equal; shorter string sorts first.
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}

// FromGo converts a plain Go value (as produced by encoding/json or
// yaml.v3 decoding into any) to a Value. Returns an *EncodingError for
// types outside {string, number, bool, nil, []any, map[string]any}.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case float64:
		// json.Unmarshal decodes every number as float64; collapse whole
		// numbers back to Int so 75 and 75.0 canonicalize identically.
		if val == float64(int64(val)) {
			return Int(int64(val)), nil
		}
		return Float(val), nil
	case float32:
		return FromGo(float64(val))
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			cv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = cv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			cv, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			obj[k] = cv
		}
		return obj, nil
	default:
		return nil, &EncodingError{Type: fmt.Sprintf("%T", v)}
	}
}

// MustFromGo is like FromGo but panics on error. Use only in tests or when
// inputs are known to be valid.
func MustFromGo(v any) Value {
	cv, err := FromGo(v)
	if err != nil {
		panic(err)
	}
	return cv
}
