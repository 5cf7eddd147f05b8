// Package kinematics provides the two-body phase-space and line-shape
// primitives of the decay core: center-of-mass momenta, Blatt-Weisskopf
// barrier factors, Post form factors and Breit-Wigner densities.
package kinematics

import (
	"fmt"
	"math"
)

const (
	// HBarC is hbar*c in GeV*fm.
	HBarC = 0.197327053
	// InteractionRadius is the hadronic interaction radius [fm] entering
	// the Blatt-Weisskopf barrier factor.
	InteractionRadius = 1.0
	// ReallySmall is the generic numerical tolerance of the decay core.
	ReallySmall = 1e-10
	// FineStructure is the electromagnetic fine-structure constant.
	FineStructure = 7.2973525698e-3
)

// PCMSqr returns the squared center-of-mass momentum of a two-body final
// state with masses m1 and m2 at total energy sqrts, clamped at zero
// below threshold.
func PCMSqr(sqrts, m1, m2 float64) float64 {
	s := sqrts * sqrts
	sum := m1 + m2
	diff := m1 - m2
	p2 := (s - sum*sum) * (s - diff*diff) / (4 * s)
	if p2 < 0 {
		return 0
	}
	return p2
}

// PCM returns the center-of-mass momentum of a two-body final state,
// zero below threshold.
func PCM(sqrts, m1, m2 float64) float64 {
	return math.Sqrt(PCMSqr(sqrts, m1, m2))
}

// MaxBarrierL is the largest orbital angular momentum supported by the
// Blatt-Weisskopf barrier factor.
const MaxBarrierL = 4

// BlattWeisskopfSqr returns the squared Blatt-Weisskopf barrier-
// penetration factor for CM momentum pAB [GeV] and orbital angular
// momentum L. Panics for L > MaxBarrierL; decay tables reject such
// modes at load time.
func BlattWeisskopfSqr(pAB float64, L int) float64 {
	if L == 0 {
		return 1
	}
	x := pAB * InteractionRadius / HBarC
	x2 := x * x
	switch L {
	case 1:
		return x2 / (1 + x2)
	case 2:
		x4 := x2 * x2
		return x4 / (9 + 3*x2 + x4)
	case 3:
		x4 := x2 * x2
		x6 := x4 * x2
		return x6 / (225 + 45*x2 + 6*x4 + x6)
	case 4:
		x4 := x2 * x2
		x6 := x4 * x2
		x8 := x4 * x4
		return x8 / (11025 + 1575*x2 + 135*x4 + 10*x6 + x8)
	}
	panic(fmt.Sprintf("kinematics: Blatt-Weisskopf factor undefined for L=%d", L))
}

// PostFFSqr returns the squared Post form factor for the running mass m,
// pole mass m0, threshold sqrts0 and cutoff Lambda [GeV].
func PostFFSqr(m, m0, sqrts0, lambda float64) float64 {
	l4 := lambda * lambda * lambda * lambda
	m0sqr := m0 * m0
	s0 := sqrts0 * sqrts0
	msqr := m * m
	d := msqr - 0.5*(s0+m0sqr)
	ff := (l4 + 0.25*(s0-m0sqr)*(s0-m0sqr)) / (l4 + d*d)
	return ff * ff
}

// BreitWigner returns the unnormalized relativistic Breit-Wigner density
// at mass m for pole mass pole and (possibly mass-dependent) width.
func BreitWigner(m, pole, width float64) float64 {
	msqr := m * m
	d := msqr - pole*pole
	return 2 * msqr * width / (math.Pi * (d*d + msqr*width*width))
}

// Cauchy returns the Cauchy (non-relativistic Breit-Wigner) density with
// the given pole and half-width gamma.
func Cauchy(x, pole, gamma float64) float64 {
	d := x - pole
	return gamma / math.Pi / (d*d + gamma*gamma)
}

// BreitWignerNonRel returns the non-relativistic Breit-Wigner density at
// mass m, i.e. a Cauchy density with half the width.
func BreitWignerNonRel(m, pole, width float64) float64 {
	return Cauchy(m, pole, width/2)
}
