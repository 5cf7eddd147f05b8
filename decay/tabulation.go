package decay

import "gonum.org/v1/gonum/interp"

// tabulationPoints is the number of samples in a width tabulation.
const tabulationPoints = 200

// tabulation caches an expensive function of mass on a uniform grid and
// answers queries by piecewise-linear interpolation. Below the grid the
// value is zero; above it the last segment is extrapolated.
type tabulation struct {
	x0, x1 float64
	pl     interp.PiecewiseLinear
	ys     []float64
	dx     float64
}

func newTabulation(x0, rangeWidth float64, n int, f func(float64) float64) *tabulation {
	xs := make([]float64, n)
	ys := make([]float64, n)
	dx := rangeWidth / float64(n-1)
	for i := 0; i < n; i++ {
		xs[i] = x0 + float64(i)*dx
		ys[i] = f(xs[i])
	}
	t := &tabulation{x0: x0, x1: xs[n-1], ys: ys, dx: dx}
	if err := t.pl.Fit(xs, ys); err != nil {
		// Fit only fails on malformed grids, which cannot happen here.
		panic(err)
	}
	return t
}

// valueLinear returns the interpolated value at x.
func (t *tabulation) valueLinear(x float64) float64 {
	switch {
	case x < t.x0:
		return 0
	case x > t.x1:
		// Linear extrapolation from the last segment.
		n := len(t.ys)
		slope := (t.ys[n-1] - t.ys[n-2]) / t.dx
		return t.ys[n-1] + slope*(x-t.x1)
	}
	return t.pl.Predict(x)
}
