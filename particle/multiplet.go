package particle

// Multiplet groups the charge states of one isospin multiplet, e.g. the
// nucleon doublet or the pion triplet. States are ordered by ascending
// charge; the doubled isospin is the state count minus one, and the
// doubled projections run -2I, -2I+2, ..., +2I in that order.
type Multiplet struct {
	name    string
	isospin int // doubled total isospin 2I
	states  []*Type
	anti    *Multiplet
}

// NewMultiplet creates a multiplet over the given charge states, which
// must already be ordered by ascending charge. Isospin projections are
// assigned here.
func NewMultiplet(name string, states []*Type) *Multiplet {
	m := &Multiplet{
		name:    name,
		isospin: len(states) - 1,
		states:  states,
	}
	for i, s := range states {
		s.multiplet = m
		s.iso3 = -m.isospin + 2*i
	}
	return m
}

// Name returns the multiplet name.
func (m *Multiplet) Name() string { return m.name }

// Isospin returns the doubled total isospin 2I.
func (m *Multiplet) Isospin() int { return m.isospin }

// States returns the charge states in ascending-charge order. The slice
// must not be modified.
func (m *Multiplet) States() []*Type { return m.states }

// Spin returns the doubled spin shared by all states.
func (m *Multiplet) Spin() int { return m.states[0].spin }

// Parity returns the intrinsic parity shared by all states.
func (m *Multiplet) Parity() Parity { return m.states[0].parity }

// HasAnti reports whether a distinct charge-conjugate multiplet exists.
// Self-conjugate multiplets (like the pion triplet) report false.
func (m *Multiplet) HasAnti() bool { return m.anti != nil && m.anti != m }

// Anti returns the charge-conjugate multiplet, which may be the multiplet
// itself for self-conjugate ones.
func (m *Multiplet) Anti() *Multiplet { return m.anti }
