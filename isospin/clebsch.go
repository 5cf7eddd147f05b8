// Package isospin computes isospin Clebsch-Gordan couplings for decay
// expansion. All spins and projections are passed as doubled integers so
// half-integer isospins stay exact.
package isospin

import "math"

// factorials up to 40!, enough for any hadronic isospin coupling.
var factorial = func() [41]float64 {
	var f [41]float64
	f[0] = 1
	for i := 1; i < len(f); i++ {
		f[i] = f[i-1] * float64(i)
	}
	return f
}()

// fact returns n! for a doubled-integer argument n2 = 2n. Negative or odd
// arguments yield NaN, which poisons the corresponding Racah term.
func fact(n2 int) float64 {
	if n2 < 0 || n2%2 != 0 {
		return math.NaN()
	}
	return factorial[n2/2]
}

// ClebschGordan returns the coefficient <j1 m1 j2 m2 | J M> via the Racah
// formula. All arguments are doubled. Physically impossible couplings
// return 0.
func ClebschGordan(j1, j2, J, m1, m2, M int) float64 {
	if m1+m2 != M {
		return 0
	}
	if J < abs(j1-j2) || J > j1+j2 || abs(m1) > j1 || abs(m2) > j2 || abs(M) > J {
		return 0
	}
	// (j1+j2+J)/2 must be integer for a valid triangle of (half-)integers.
	if (j1+j2+J)%2 != 0 {
		return 0
	}

	pre := float64(J+1) *
		fact(j1+j2-J) * fact(j1-j2+J) * fact(-j1+j2+J) / fact(j1+j2+J+2) *
		fact(j1+m1) * fact(j1-m1) * fact(j2+m2) * fact(j2-m2) *
		fact(J+M) * fact(J-M)

	// Summation index k is doubled like everything else and stepped by 2.
	kMin := 0
	if v := j2 - J - m1; v > kMin {
		kMin = v
	}
	if v := j1 - J + m2; v > kMin {
		kMin = v
	}
	kMax := j1 + j2 - J
	if v := j1 - m1; v < kMax {
		kMax = v
	}
	if v := j2 + m2; v < kMax {
		kMax = v
	}

	sum := 0.0
	for k := kMin; k <= kMax; k += 2 {
		sign := 1.0
		if (k/2)%2 != 0 {
			sign = -1
		}
		sum += sign / (fact(k) * fact(j1+j2-J-k) * fact(j1-m1-k) *
			fact(j2+m2-k) * fact(J-j2+m1+k) * fact(J-j1-m2+k))
	}
	return math.Sqrt(pre) * sum
}

// State is the isospin content of one particle species: total isospin and
// projection, both doubled.
type State struct {
	I  int // doubled total isospin 2I
	I3 int // doubled projection 2*I_3
}

// CouplingSqr2To1 returns the squared Clebsch-Gordan coefficient for
// coupling two daughters into one mother state. Zero means the coupling
// is isospin-forbidden.
func CouplingSqr2To1(a, b, mother State) float64 {
	cg := ClebschGordan(a.I, b.I, mother.I, a.I3, b.I3, mother.I3)
	return cg * cg
}

// CouplingSqr3To1 returns the squared coupling of three daughters into
// one mother state, summed over the allowed intermediate isospin of the
// (a,b) pair.
func CouplingSqr3To1(a, b, c, mother State) float64 {
	iabMin := abs(a.I - b.I)
	iabMax := a.I + b.I
	total := 0.0
	for iab := iabMin; iab <= iabMax; iab += 2 {
		pair := State{I: iab, I3: a.I3 + b.I3}
		total += CouplingSqr2To1(a, b, pair) * CouplingSqr2To1(pair, c, mother)
	}
	return total
}

// CouplingSqr2To2 returns the squared isospin factor for a 2-to-2 process
// a b -> c d, summed over the total isospins reachable from both sides.
// If totalI >= 0 only that doubled total isospin contributes.
func CouplingSqr2To2(a, b, c, d State, totalI int) float64 {
	iz := a.I3 + b.I3
	iMin := max(abs(a.I-b.I), abs(c.I-d.I))
	iMax := min(a.I+b.I, c.I+d.I)
	total := 0.0
	for i := iMin; i <= iMax; i += 2 {
		if totalI >= 0 && i != totalI {
			continue
		}
		tot := State{I: i, I3: iz}
		total += CouplingSqr2To1(a, b, tot) * CouplingSqr2To1(c, d, tot)
	}
	return total
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
