package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartLineSubtotal(t *testing.T) {
	tests := []struct {
		name string
		line CartLine
		want float64
	}{
		{
			name: "single plate",
			line: CartLine{Quantity: 1, PricePerPlate: 250},
			want: 250,
		},
		{
			name: "multiple plates",
			line: CartLine{Quantity: 3, PricePerPlate: 180.5},
			want: 541.5,
		},
		{
			name: "zero quantity",
			line: CartLine{Quantity: 0, PricePerPlate: 300},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.line.Subtotal(), 1e-9)
		})
	}
}

func TestCartTotal(t *testing.T) {
	tests := []struct {
		name  string
		lines []CartLine
		want  float64
	}{
		{
			name:  "empty cart totals zero",
			lines: nil,
			want:  0,
		},
		{
			name: "sums quantity times price over all lines",
			lines: []CartLine{
				{Quantity: 2, PricePerPlate: 150},
				{Quantity: 1, PricePerPlate: 320.5},
			},
			want: 620.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CartTotal(tt.lines), 1e-9)
		})
	}
}
