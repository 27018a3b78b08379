package physics

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           float64
	}{
		{"same point", 0, 0, 0, 0, 0},
		{"horizontal", 0, 0, 5, 0, 5},
		{"vertical", 100, 100, 100, 108, 8},
		{"diagonal", 0, 0, 3, 4, 5},
		{"negative", -1, -1, 1, 2, math.Sqrt(13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.x1, tt.y1, tt.x2, tt.y2); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name string
		ey   float64
		want bool
	}{
		{"inside reach", 108, true},
		{"far below", 200, false},
		{"exactly touching", 122, false},
		{"just inside", 121.99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CirclesOverlap(100, 100, 4, 100, tt.ey, 18)
			if got != tt.want {
				t.Errorf("CirclesOverlap(enemy y=%v) = %v, want %v", tt.ey, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
		{5, 18, 462, 18},
		{500, 18, 462, 462},
		{5, 10, 0, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
