// Package particle holds the frozen particle-species catalogue: species
// records, isospin multiplets and the name/PDG-indexed list that the decay
// machinery reads. All values are immutable after the list is built.
package particle

import "fmt"

// WidthCutoff is the minimal pole width [GeV] for a species to count as
// unstable. Species below it are treated as stable and never decay.
const WidthCutoff = 1e-5

// Type describes one particle species (one concrete charge state).
type Type struct {
	name    string
	mass    float64 // pole mass [GeV]
	width   float64 // pole width [GeV]
	parity  Parity
	pdg     PDG
	charge  int
	spin    int // doubled spin (2J)
	baryon  int
	strange int
	iso3    int // doubled isospin projection (2*I_3)

	// Set by NewList.
	index     int
	anti      *Type
	multiplet *Multiplet
}

// New creates a species record. Charge, spin (doubled), baryon number and
// strangeness are taken as given; they are catalogue input, not derived
// from the PDG code.
func New(name string, mass, width float64, parity Parity, pdg PDG, charge, spin, baryon, strange int) *Type {
	return &Type{
		name:    name,
		mass:    mass,
		width:   width,
		parity:  parity,
		pdg:     pdg,
		charge:  charge,
		spin:    spin,
		baryon:  baryon,
		strange: strange,
		index:   -1,
		iso3:    0,
	}
}

// Name returns the species name.
func (t *Type) Name() string { return t.name }

// Mass returns the pole mass [GeV].
func (t *Type) Mass() float64 { return t.mass }

// WidthAtPole returns the total width at the pole mass [GeV].
func (t *Type) WidthAtPole() float64 { return t.width }

// Parity returns the intrinsic parity.
func (t *Type) Parity() Parity { return t.parity }

// PDG returns the PDG code.
func (t *Type) PDG() PDG { return t.pdg }

// Charge returns the electric charge in units of e.
func (t *Type) Charge() int { return t.charge }

// Spin returns the doubled spin 2J.
func (t *Type) Spin() int { return t.spin }

// BaryonNumber returns the baryon number.
func (t *Type) BaryonNumber() int { return t.baryon }

// Strangeness returns the strangeness.
func (t *Type) Strangeness() int { return t.strange }

// Isospin returns the doubled total isospin 2I of the multiplet the
// species belongs to, or zero for non-hadrons.
func (t *Type) Isospin() int {
	if t.multiplet != nil && t.pdg.IsHadron() {
		return t.multiplet.isospin
	}
	return 0
}

// Isospin3 returns the doubled isospin projection 2*I_3.
func (t *Type) Isospin3() int { return t.iso3 }

// IsStable reports whether the species is treated as stable.
func (t *Type) IsStable() bool { return t.width < WidthCutoff }

// IsHadron reports whether the species is a hadron.
func (t *Type) IsHadron() bool { return t.pdg.IsHadron() }

// IsLepton reports whether the species is a lepton.
func (t *Type) IsLepton() bool { return t.pdg.IsLepton() }

// Index returns the position of this species in its List. Valid only
// after the list has been built.
func (t *Type) Index() int { return t.index }

// HasAnti reports whether a distinct antiparticle species exists in the
// catalogue.
func (t *Type) HasAnti() bool { return t.anti != nil }

// Anti returns the antiparticle species, or nil if the species is its own
// conjugate (or none was catalogued).
func (t *Type) Anti() *Type { return t.anti }

// Multiplet returns the isospin multiplet the species belongs to, or nil.
func (t *Type) Multiplet() *Multiplet { return t.multiplet }

func (t *Type) String() string {
	return fmt.Sprintf("%s[m:%g w:%g pdg:%d q:%+d 2J:%d]",
		t.name, t.mass, t.width, t.pdg, t.charge, t.spin)
}
