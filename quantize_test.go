package mandel

import (
	"math"
	"testing"
)

func TestQuantizerBinary(t *testing.T) {
	q := Quantizer{Delta: 0.5, Threshold: 1}
	tests := []struct {
		d    float64
		want int
	}{
		{0.25, 1},
		{0, 1},
		{0.5, 0},
		{3, 0},
		{Huge, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := q.Binary(tt.d); got != tt.want {
			t.Errorf("Binary(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestQuantizerHugeIsNeverNear(t *testing.T) {
	for _, delta := range []float64{1e-9, 1, 1e300, math.MaxFloat64, math.Inf(1)} {
		q := Quantizer{Delta: delta, Threshold: 1}
		if got := q.Binary(Huge); got != 0 {
			t.Errorf("delta %v: Binary(Huge) = %d, want 0", delta, got)
		}
		if got := q.Gray(Huge); got != 0 {
			t.Errorf("delta %v: Gray(Huge) = %d, want 0", delta, got)
		}
	}
}

func TestQuantizerGray(t *testing.T) {
	tests := []struct {
		q    Quantizer
		d    float64
		want int
	}{
		{Quantizer{Delta: 0.5, Threshold: 1}, 0.25, 64},
		{Quantizer{Delta: 0.5, Threshold: 1}, 0, 0},
		{Quantizer{Delta: 0.5, Threshold: 1}, -0.1, 0},
		{Quantizer{Delta: 0.5, Threshold: 1}, 0.6, 0},
		{Quantizer{Delta: 10, Threshold: 1}, 5, 255},
		{Quantizer{Delta: 0.01, Threshold: 2}, 0.0078125, 1},
	}
	for _, tt := range tests {
		if got := tt.q.Gray(tt.d); got != tt.want {
			t.Errorf("%+v Gray(%v) = %d, want %d", tt.q, tt.d, got, tt.want)
		}
	}
}
