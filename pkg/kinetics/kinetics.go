// Package kinetics provides the saturation response curves underlying the
// allocator: the Monod (Michaelis-Menten) equation and its sigmoidal
// generalization, the Hill equation.
//
// All functions are pure and referentially transparent. They are numerically
// stable over the ranges the allocator operates in, x in [0, 1e6], km in
// (0, 1e6] and Hill exponents up to the solver's configured ceiling: the Hill
// ratio is evaluated in log space so x^n never overflows.
package kinetics

import "math"

// expCutoff bounds the exponent passed to math.Exp when forming the Hill
// ratio t = (x/km)^n. Beyond it t/(1+t) is indistinguishable from its limit.
const expCutoff = 500

// MonodVelocity returns the Monod (Michaelis-Menten) velocity
//
//	v = vmax * x / (km + x)
//
// for resource level x >= 0 and half-saturation constant km > 0. The velocity
// is 0 at x=0 and approaches vmax asymptotically.
func MonodVelocity(x, vmax, km float64) float64 {
	if x <= 0 {
		return 0
	}
	return vmax * x / (km + x)
}

// MonodSlope returns the derivative of MonodVelocity with respect to x,
//
//	dv/dx = vmax * km / (km + x)^2
func MonodSlope(x, vmax, km float64) float64 {
	if x < 0 {
		return 0
	}
	d := km + x
	return vmax * km / (d * d)
}

// HillVelocity returns the Hill velocity
//
//	v = vmax * x^n / (km^n + x^n)
//
// for x >= 0, km > 0 and Hill coefficient n > 0. x=0 is special-cased to 0,
// avoiding the indeterminate 0^n/0^n form for small n. n=1 reduces to the
// Monod equation.
func HillVelocity(x, vmax, km, n float64) float64 {
	if x <= 0 {
		return 0
	}
	e := n * (math.Log(x) - math.Log(km))
	switch {
	case e > expCutoff:
		return vmax
	case e < -expCutoff:
		return 0
	}
	t := math.Exp(e)
	return vmax * t / (1 + t)
}

// HillSlope returns the derivative of HillVelocity with respect to x. With
// t = (x/km)^n,
//
//	dv/dx = vmax * n * t / (x * (1+t)^2)
//
// The slope at x=0 is reported as 0; the solver always evaluates strictly
// inside the box so the n<1 singularity at the origin is never reached.
func HillSlope(x, vmax, km, n float64) float64 {
	if x <= 0 {
		return 0
	}
	e := n * (math.Log(x) - math.Log(km))
	if e > expCutoff || e < -expCutoff {
		return 0
	}
	t := math.Exp(e)
	d := 1 + t
	return vmax * n * t / (x * d * d)
}
