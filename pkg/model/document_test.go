package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestDocument_Int(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		want    *int64
		wantErr bool
	}{
		{name: "missing field", doc: Document{}, want: nil},
		{name: "null field", doc: Document{"date": nil}, want: nil},
		{name: "int32", doc: Document{"date": int32(7)}, want: ptr(7)},
		{name: "int64", doc: Document{"date": int64(1 << 40)}, want: ptr(1 << 40)},
		{name: "integral float", doc: Document{"date": 5.0}, want: ptr(5)},
		{name: "zero", doc: Document{"date": int32(0)}, want: ptr(0)},
		{name: "json number", doc: Document{"date": json.Number("12")}, want: ptr(12)},
		{name: "fractional float", doc: Document{"date": 1.5}, wantErr: true},
		{name: "string", doc: Document{"date": "2024-01-01"}, wantErr: true},
		{name: "bool", doc: Document{"date": true}, wantErr: true},
		{name: "float at 2^63", doc: Document{"date": 9223372036854775808.0}, wantErr: true},
		{name: "json number at 2^63", doc: Document{"date": json.Number("9223372036854775808")}, wantErr: true},
		{name: "float at -2^63", doc: Document{"date": -9223372036854775808.0}, want: ptr(math.MinInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.Int("date")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Int() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Int() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func ptr(n int64) *int64 { return &n }

func TestDocument_Matches(t *testing.T) {
	doc := Document{"room_id": int32(5), "room_type": "suite", "price_per_hour": 49.5}

	tests := []struct {
		name   string
		filter map[string]any
		want   bool
	}{
		{name: "empty filter", filter: map[string]any{}, want: true},
		{name: "int64 against int32", filter: map[string]any{"room_id": int64(5)}, want: true},
		{name: "float", filter: map[string]any{"price_per_hour": 49.5}, want: true},
		{name: "string", filter: map[string]any{"room_type": "suite"}, want: true},
		{name: "different value", filter: map[string]any{"room_id": int64(6)}, want: false},
		{name: "missing field", filter: map[string]any{"date": int64(1)}, want: false},
		{name: "number against string", filter: map[string]any{"room_type": int64(1)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.Matches(tt.filter); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}
