package animation_test

import (
	"math"
	"testing"

	"github.com/go-drift/frameclock/pkg/animation"
)

func TestCurveEndpoints(t *testing.T) {
	curves := map[string]animation.Curve{
		"Linear":     animation.LinearCurve,
		"Ease":       animation.Ease,
		"EaseIn":     animation.EaseIn,
		"EaseOut":    animation.EaseOut,
		"EaseInOut":  animation.EaseInOut,
		"ElasticOut": animation.ElasticOut,
		"BounceOut":  animation.BounceOut,
		"BackInOut":  animation.BackInOut,
		"SineInOut":  animation.SineInOut,
	}
	for name, curve := range curves {
		if got := curve(0); math.Abs(got) > 1e-6 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := curve(1); math.Abs(got-1) > 1e-6 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	curve := animation.CubicBezier(0.4, 0.0, 0.2, 1.0)
	prev := curve(0)
	for i := 1; i <= 100; i++ {
		v := curve(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("curve decreased at t=%v: %v -> %v", float64(i)/100, prev, v)
		}
		prev = v
	}
}

func TestCubicBezierClampsOutOfRange(t *testing.T) {
	curve := animation.CubicBezier(0.25, 0.1, 0.25, 1.0)
	if got := curve(-0.5); got != 0 {
		t.Errorf("curve(-0.5) = %v, want 0", got)
	}
	if got := curve(1.5); got != 1 {
		t.Errorf("curve(1.5) = %v, want 1", got)
	}
}

func TestCubicBezierIdentity(t *testing.T) {
	// Control points on the diagonal give the identity curve.
	curve := animation.CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for i := 0; i <= 10; i++ {
		x := float64(i) / 10
		if got := curve(x); math.Abs(got-x) > 1e-4 {
			t.Errorf("identity curve(%v) = %v", x, got)
		}
	}
}
