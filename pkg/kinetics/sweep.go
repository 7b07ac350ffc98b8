package kinetics

// SweepPoint holds the velocities of the Monod baseline and a set of Hill
// curves evaluated at a single resource level.
type SweepPoint struct {
	X     float64
	Monod float64
	// Hill holds one velocity per swept exponent, in the order the
	// exponents were supplied.
	Hill []float64
}

// Sweep evaluates the Monod baseline and a family of Hill curves with the
// given exponents over steps equally spaced resource levels in [xMin, xMax].
// It backs the efficiency-curve report comparing cooperativity regimes.
func Sweep(xMin, xMax float64, steps int, vmax, km float64, exponents []float64) []SweepPoint {
	if steps < 2 || xMax <= xMin {
		return nil
	}
	points := make([]SweepPoint, steps)
	dx := (xMax - xMin) / float64(steps-1)
	for i := range points {
		x := xMin + float64(i)*dx
		p := SweepPoint{
			X:     x,
			Monod: MonodVelocity(x, vmax, km),
			Hill:  make([]float64, len(exponents)),
		}
		for j, n := range exponents {
			p.Hill[j] = HillVelocity(x, vmax, km, n)
		}
		points[i] = p
	}
	return points
}

// SweepExponents returns count exponents equally spaced across [nMin, nMax],
// the gamma range the sweep report covers.
func SweepExponents(nMin, nMax float64, count int) []float64 {
	if count < 1 || nMax < nMin {
		return nil
	}
	if count == 1 {
		return []float64{nMin}
	}
	ns := make([]float64, count)
	dn := (nMax - nMin) / float64(count-1)
	for i := range ns {
		ns[i] = nMin + float64(i)*dn
	}
	return ns
}
