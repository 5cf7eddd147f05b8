package particle

import "strconv"

// PDG is a Particle Data Group numbering-scheme identifier.
// Antiparticles carry the negated code of their partner.
type PDG int32

// Anti returns the PDG code of the antiparticle.
func (p PDG) Anti() PDG { return -p }

func (p PDG) abs() PDG {
	if p < 0 {
		return -p
	}
	return p
}

// IsLepton reports whether the code denotes a charged lepton or neutrino.
func (p PDG) IsLepton() bool {
	a := p.abs()
	return a >= 11 && a <= 16
}

// IsPhoton reports whether the code denotes the photon.
func (p PDG) IsPhoton() bool { return p == 22 }

// IsHadron reports whether the code denotes a hadron (anything that is
// neither a lepton nor the photon).
func (p PDG) IsHadron() bool { return p != 0 && !p.IsLepton() && !p.IsPhoton() }

func (p PDG) String() string { return strconv.Itoa(int(p)) }

// IsDilepton reports whether the two codes form a lepton/antilepton pair,
// e.g. e⁻e⁺ or μ⁻μ⁺.
func IsDilepton(a, b PDG) bool {
	return a == -b && a.IsLepton()
}

// HasLeptonPair reports whether any two of the three codes form a
// lepton/antilepton pair.
func HasLeptonPair(a, b, c PDG) bool {
	return IsDilepton(a, b) || IsDilepton(a, c) || IsDilepton(b, c)
}
