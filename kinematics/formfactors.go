package kinematics

import "github.com/pthm-cable/resonance/particle"

// PDG codes of the species with dedicated electromagnetic form factors.
const (
	pdgPiZero particle.PDG = 111
	pdgEta    particle.PDG = 221
	pdgOmega  particle.PDG = 223
)

// EMFormFactorPS returns the electromagnetic transition form factor of a
// pseudoscalar meson Dalitz decay at dilepton mass m.
func EMFormFactorPS(pdg particle.PDG, m float64) float64 {
	switch pdg {
	case pdgPiZero:
		return 1 + 5.5*m*m
	case pdgEta:
		const lambda = 0.716
		x := m / lambda
		return 1 / (1 - x*x)
	}
	return 1
}

// EMFormFactorSqrVec returns the squared electromagnetic transition form
// factor of a vector meson Dalitz decay at dilepton mass m.
func EMFormFactorSqrVec(pdg particle.PDG, m float64) float64 {
	if pdg == pdgOmega {
		const (
			lambda = 0.65
			gamma  = 0.075
		)
		d := lambda*lambda - m*m
		return lambda * lambda * lambda * lambda /
			(d*d + lambda*lambda*gamma*gamma)
	}
	return 1
}

// FormFactorDelta returns the electromagnetic form factor of the
// Delta Dalitz decay. A constant fit value is used.
func FormFactorDelta(_ float64) float64 { return 3.12 }
