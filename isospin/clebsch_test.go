package isospin

import (
	"math"
	"testing"
)

func TestClebschGordanKnownValues(t *testing.T) {
	cases := []struct {
		name                 string
		j1, j2, J, m1, m2, M int
		want                 float64
	}{
		{"two spin-1/2 to singlet", 1, 1, 0, 1, -1, 0, 1 / math.Sqrt2},
		{"two spin-1/2 to triplet", 1, 1, 2, 1, -1, 0, 1 / math.Sqrt2},
		{"stretched state", 1, 2, 3, 1, 2, 3, 1},
		{"1x1 to 1 at zero", 2, 2, 2, 0, 0, 0, 0},
		{"1x1 to 0", 2, 2, 0, 2, -2, 0, 1 / math.Sqrt(3)},
		{"charge mismatch", 2, 2, 2, 2, 2, 0, 0},
	}
	for _, c := range cases {
		got := ClebschGordan(c.j1, c.j2, c.J, c.m1, c.m2, c.M)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("%s: ClebschGordan = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestClebschGordanCompleteness(t *testing.T) {
	// For fixed daughters, the squared couplings over all total isospins
	// and projections must sum to 1.
	j1, j2 := 2, 1 // isospin 1 and 1/2
	for m1 := -j1; m1 <= j1; m1 += 2 {
		for m2 := -j2; m2 <= j2; m2 += 2 {
			sum := 0.0
			for J := j1 - j2; J <= j1+j2; J += 2 {
				cg := ClebschGordan(j1, j2, J, m1, m2, m1+m2)
				sum += cg * cg
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("completeness for m1=%d m2=%d: sum %v", m1, m2, sum)
			}
		}
	}
}

func TestCouplingSqr2To1(t *testing.T) {
	// Delta++ -> N+ pi+ is a stretched coupling with unit weight.
	got := CouplingSqr2To1(State{1, 1}, State{2, 2}, State{3, 3})
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("stretched coupling = %v, want 1", got)
	}
	// rho0 -> pi0 pi0 is isospin-forbidden.
	if got := CouplingSqr2To1(State{2, 0}, State{2, 0}, State{2, 0}); got != 0 {
		t.Errorf("pi0 pi0 coupling = %v, want 0", got)
	}
	// omega -> rho pi: each charge combination carries 1/3.
	for i3 := -2; i3 <= 2; i3 += 2 {
		got := CouplingSqr2To1(State{2, i3}, State{2, -i3}, State{0, 0})
		if math.Abs(got-1.0/3.0) > 1e-12 {
			t.Errorf("rho pi coupling at i3=%d: %v, want 1/3", i3, got)
		}
	}
}

func TestCouplingSqr3To1Normalization(t *testing.T) {
	// Summing over all daughter projections for a fixed mother state must
	// give 1 (three pions into an isospin singlet).
	mother := State{0, 0}
	sum := 0.0
	for a := -2; a <= 2; a += 2 {
		for b := -2; b <= 2; b += 2 {
			c := -(a + b)
			if c < -2 || c > 2 {
				continue
			}
			sum += CouplingSqr3To1(State{2, a}, State{2, b}, State{2, c}, mother)
		}
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("3-to-1 normalization: sum %v, want 1", sum)
	}
}

func TestCouplingSqr2To2(t *testing.T) {
	// pi+ pi- <-> pi0 pi0 proceeds through I = 0 and 2 only; the I = 1
	// contribution vanishes.
	piPlus := State{2, 2}
	piMinus := State{2, -2}
	piZero := State{2, 0}
	if got := CouplingSqr2To2(piPlus, piMinus, piZero, piZero, 2); got != 0 {
		t.Errorf("I=1 contribution = %v, want 0", got)
	}
	all := CouplingSqr2To2(piPlus, piMinus, piZero, piZero, -1)
	fixed := CouplingSqr2To2(piPlus, piMinus, piZero, piZero, 0) +
		CouplingSqr2To2(piPlus, piMinus, piZero, piZero, 4)
	if math.Abs(all-fixed) > 1e-12 {
		t.Errorf("total %v does not decompose into I=0,2 parts %v", all, fixed)
	}
}
