package sfoglia

import (
	"math"
	"strings"
)

// EaseFunc maps linear progress (0..1) to eased progress.
type EaseFunc func(float64) float64

// EasingByName resolves a named easing curve. Names follow the
// "family.variant" convention (power1.out, power3.inOut, expo.out, ...).
func EasingByName(name string) (EaseFunc, bool) {
	fn, ok := easings[strings.ToLower(name)]
	return fn, ok
}

func easeOrDefault(name string) EaseFunc {
	if fn, ok := EasingByName(name); ok {
		return fn
	}
	return easings["power2.out"]
}

func powerIn(p float64) EaseFunc {
	return func(t float64) float64 {
		return math.Pow(t, p)
	}
}

func powerOut(p float64) EaseFunc {
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, p)
	}
}

func powerInOut(p float64) EaseFunc {
	in := powerIn(p)
	out := powerOut(p)
	return func(t float64) float64 {
		if t < 0.5 {
			return in(t*2) / 2
		}
		return 0.5 + out(t*2-1)/2
	}
}

func expoOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func expoInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

var easings = map[string]EaseFunc{
	"linear":        func(t float64) float64 { return t },
	"power1.in":     powerIn(2),
	"power1.out":    powerOut(2),
	"power1.inout":  powerInOut(2),
	"power2.in":     powerIn(3),
	"power2.out":    powerOut(3),
	"power2.inout":  powerInOut(3),
	"power3.in":     powerIn(4),
	"power3.out":    powerOut(4),
	"power3.inout":  powerInOut(4),
	"expo.out":      expoOut,
	"expo.inout":    expoInOut,
}
