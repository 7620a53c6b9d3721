package model

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

const (
	FieldID           = "_id"
	FieldRoomID       = "room_id"
	FieldDate         = "date"
	FieldRoomType     = "room_type"
	FieldPricePerHour = "price_per_hour"
)

// Document is a stored record as the caller supplied it. Neither collection
// enforces a shape, so reads and writes pass documents through untouched.
type Document map[string]any

// Int returns the integer stored under field. A missing or null field yields
// nil; a value that is not an integral number is an error.
func (d Document) Int(field string) (*int64, error) {
	raw, ok := d[field]
	if !ok || raw == nil {
		return nil, nil
	}

	n, ok := AsInt64(raw)
	if !ok {
		return nil, fmt.Errorf("%s must be an integer, got %v", field, raw)
	}
	return &n, nil
}

// AsInt64 converts the numeric representations produced by the JSON and BSON
// decoders into an int64 when the value is integral.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
		if n < math.MinInt64 || n >= -math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return AsInt64(f)
	default:
		return 0, false
	}
}

type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Matches reports whether every field in f is present in d with an equal
// value. Numbers compare by value across int32, int64 and float64, the way
// the store compares them.
func (d Document) Matches(f map[string]any) bool {
	for k, want := range f {
		got, ok := d[k]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	fa, aNum := asFloat(a)
	fb, bNum := asFloat(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
