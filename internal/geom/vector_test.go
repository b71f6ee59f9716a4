package geom

import (
	"errors"
	"math"
	"testing"
)

func TestVector2_Arithmetic(t *testing.T) {
	a := Vec(1, 2)
	b := Vec(4, 6)

	if got := a.Add(b); got != Vec(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != Vec(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != Vec(2, 4) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Neg(); got != Vec(-1, -2) {
		t.Errorf("Neg failed: got %v", got)
	}
	if got := a.Dot(b); got != 16 {
		t.Errorf("Dot failed: got %v", got)
	}
	if a != Vec(1, 2) || b != Vec(4, 6) {
		t.Error("operands were mutated")
	}
}

func TestVector2_Magnitude(t *testing.T) {
	tests := []struct {
		v        Vector2
		expected float64
	}{
		{Vec(3, 4), 5.0},
		{Vec(1, 0), 1.0},
		{Vec(0, 0), 0.0},
		{Vec(-6, 8), 10.0},
	}

	for _, tt := range tests {
		if got := tt.v.Magnitude(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Magnitude(%v) = %v, want %v", tt.v, got, tt.expected)
		}
		if got := tt.v.MagnitudeSquared(); math.Abs(got-tt.expected*tt.expected) > 1e-12 {
			t.Errorf("MagnitudeSquared(%v) = %v, want %v", tt.v, got, tt.expected*tt.expected)
		}
	}
}

func TestVector2_Normalize(t *testing.T) {
	n, err := Vec(3, 4).Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(n.X-0.6) > 1e-12 || math.Abs(n.Y-0.8) > 1e-12 {
		t.Errorf("Normalize = %v, want (0.6, 0.8)", n)
	}

	if _, err := Zero.Normalize(); !errors.Is(err, ErrZeroVector) {
		t.Errorf("expected ErrZeroVector, got %v", err)
	}
}

func TestVector2_MustNormalizePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on zero vector")
		}
	}()
	Zero.MustNormalize()
}

func TestVector2_Div(t *testing.T) {
	got, err := Vec(4, 2).Div(2)
	if err != nil || got != Vec(2, 1) {
		t.Errorf("Div = %v, %v", got, err)
	}
	if _, err := Vec(1, 1).Div(0); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
}

func TestVector2_IsFinite(t *testing.T) {
	if !Vec(1, 2).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if Vec(math.NaN(), 0).IsFinite() || Vec(0, math.Inf(-1)).IsFinite() {
		t.Error("NaN/Inf vector reported as finite")
	}
}
