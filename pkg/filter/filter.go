// Package filter maps query parameters onto equality filters over the known
// room and booking fields.
package filter

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	apperrors "hallbooking/pkg/errors"
	"hallbooking/pkg/model"
	"hallbooking/pkg/sanitizer"
)

type Kind int

const (
	Int Kind = iota
	Number
	String
)

// Fields is the closed set of filterable fields and their types.
type Fields map[string]Kind

// RoomFields serves both the facility and the booking collections.
var RoomFields = Fields{
	model.FieldRoomID:       Int,
	model.FieldDate:         Int,
	model.FieldRoomType:     String,
	model.FieldPricePerHour: Number,
}

// Filter is an equality match, field to value.
type Filter map[string]any

// Parse builds a Filter from q. Unknown keys and values that do not coerce
// to the field type are rejected. Only the first value of a repeated key is
// used.
func Parse(q url.Values, fields Fields) (Filter, error) {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := Filter{}
	for _, key := range keys {
		kind, ok := fields[key]
		if !ok {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown filter field: %s", key)).
				WithDetails(map[string]any{"field": key})
		}

		values := q[key]
		if len(values) == 0 {
			continue
		}

		v, err := coerce(kind, values[0])
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid value for %s: %s", key, err)).
				WithDetails(map[string]any{"field": key, "value": values[0]})
		}
		f[key] = v
	}
	return f, nil
}

func coerce(kind Kind, raw string) (any, error) {
	switch kind {
	case Int:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected an integer")
		}
		return n, nil
	case Number:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number")
		}
		return sanitizer.NormalizeFloat(n), nil
	default:
		return raw, nil
	}
}

// RoomID parses a path parameter into a room_id. ok is false when the value
// is not an integer; such a value matches no stored document.
func RoomID(raw string) (id int64, ok bool) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
