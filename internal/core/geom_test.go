package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name   string
		in     Vec2
		wantOK bool
		want   Vec2
	}{
		{"axis", V(3, 0), true, V(1, 0)},
		{"diagonal 3-4-5", V(3, 4), true, V(0.6, 0.8)},
		{"zero", V(0, 0), false, V(0, 0)},
		{"tiny", V(1e-12, 0), false, V(1e-12, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.in.Normalize()
			if ok != tc.wantOK {
				t.Fatalf("Normalize() ok = %v, expected %v", ok, tc.wantOK)
			}
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("Normalize() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestVec2Rotate(t *testing.T) {
	got := V(1, 0).Rotate(math.Pi / 2)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("Rotate(pi/2) = %v, expected (0, 1)", got)
	}

	// Rotation preserves length
	v := V(2, -3).Rotate(0.7)
	if math.Abs(v.Len()-math.Hypot(2, 3)) > 1e-9 {
		t.Errorf("Rotate changed length: %f", v.Len())
	}
}

func TestVec2Floor(t *testing.T) {
	tests := []struct {
		in   Vec2
		x, y int
	}{
		{V(2.9, 3.1), 2, 3},
		{V(0, 0), 0, 0},
		{V(-0.2, 4.0), -1, 4},
		{V(19.999, -1.5), 19, -2},
	}

	for _, tc := range tests {
		x, y := tc.in.Floor()
		if x != tc.x || y != tc.y {
			t.Errorf("Floor(%v) = (%d, %d), expected (%d, %d)", tc.in, x, y, tc.x, tc.y)
		}
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(0.5, -1)

	if got := a.Add(b); got != V(1.5, 1) {
		t.Errorf("Add() = %v, expected (1.5, 1)", got)
	}
	if got := a.Sub(b); got != V(0.5, 3) {
		t.Errorf("Sub() = %v, expected (0.5, 3)", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale() = %v, expected (2, 4)", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
	if Abs(0) != 0 {
		t.Error("Abs(0) should be 0")
	}
}
