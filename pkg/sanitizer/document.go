package sanitizer

import (
	"encoding/json"
	"errors"
	"io"
	"math"

	apperrors "hallbooking/pkg/errors"
	"hallbooking/pkg/model"
)

// maxSafeInteger is the largest integer a double represents exactly.
const maxSafeInteger = 1 << 53

// DecodeDocument reads a single JSON object from r. An empty body decodes to
// an empty document.
func DecodeDocument(r io.Reader) (model.Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Document{}, nil
		}
		return nil, apperrors.InvalidInput("Invalid JSON body")
	}
	if dec.More() {
		return nil, apperrors.InvalidInput("Request body must contain a single JSON object")
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, apperrors.InvalidInput("Request body must be a JSON object")
	}

	return model.Document(normalizeObject(obj)), nil
}

func normalizeObject(obj map[string]any) map[string]any {
	for k, v := range obj {
		obj[k] = Normalize(v)
	}
	return obj
}

// Normalize converts json.Number values in v to their store representation.
func Normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		return NormalizeNumber(val)
	case map[string]any:
		return normalizeObject(val)
	case []any:
		for i := range val {
			val[i] = Normalize(val[i])
		}
		return val
	default:
		return v
	}
}

func NormalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return narrow(i)
	}

	f, err := n.Float64()
	if err != nil {
		// out of float64 range, keep the literal
		return n.String()
	}
	if f == math.Trunc(f) && math.Abs(f) <= maxSafeInteger {
		return narrow(int64(f))
	}
	return f
}

// NormalizeFloat applies the same representation rules to an already parsed
// number.
func NormalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) <= maxSafeInteger {
		return narrow(int64(f))
	}
	return f
}

func narrow(i int64) any {
	if i >= math.MinInt32 && i <= math.MaxInt32 {
		return int32(i)
	}
	return i
}
