package filter

import (
	"net/url"
	"testing"

	apperrors "hallbooking/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Filter
	}{
		{name: "empty", query: "", want: Filter{}},
		{name: "room id", query: "room_id=101", want: Filter{"room_id": int64(101)}},
		{name: "date", query: "date=20240101", want: Filter{"date": int64(20240101)}},
		{name: "room type kept as is", query: "room_type=Deluxe%20Suite", want: Filter{"room_type": "Deluxe Suite"}},
		{name: "integral price", query: "price_per_hour=50", want: Filter{"price_per_hour": int32(50)}},
		{name: "fractional price", query: "price_per_hour=49.5", want: Filter{"price_per_hour": 49.5}},
		{name: "first value wins", query: "room_id=1&room_id=2", want: Filter{"room_id": int64(1)}},
		{
			name:  "combined",
			query: "room_id=7&room_type=single",
			want:  Filter{"room_id": int64(7), "room_type": "single"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := Parse(q, RoomFields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "unknown field", query: "colour=red"},
		{name: "operator injection", query: "room_id[$gt]=1"},
		{name: "non numeric room id", query: "room_id=abc"},
		{name: "fractional date", query: "date=1.5"},
		{name: "non numeric price", query: "price_per_hour=cheap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			_, err = Parse(q, RoomFields)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
		})
	}
}

func TestRoomID(t *testing.T) {
	id, ok := RoomID("999")
	assert.True(t, ok)
	assert.Equal(t, int64(999), id)

	_, ok = RoomID("abc")
	assert.False(t, ok)

	_, ok = RoomID("")
	assert.False(t, ok)
}
