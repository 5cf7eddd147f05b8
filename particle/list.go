package particle

import "fmt"

// List is the frozen catalogue of all species and multiplets. It is
// built once at startup and read-only afterwards.
type List struct {
	types      []*Type
	byName     map[string]*Type
	byPDG      map[PDG]*Type
	multiplets map[string]*Multiplet
}

// NewList indexes the given species and multiplets, links antiparticles
// (a species whose negated PDG code is also catalogued) and
// charge-conjugate multiplets. Duplicate names or PDG codes fail.
func NewList(types []*Type, multiplets []*Multiplet) (*List, error) {
	l := &List{
		types:      types,
		byName:     make(map[string]*Type, len(types)),
		byPDG:      make(map[PDG]*Type, len(types)),
		multiplets: make(map[string]*Multiplet, len(multiplets)),
	}
	for i, t := range types {
		if _, ok := l.byName[t.name]; ok {
			return nil, fmt.Errorf("duplicate species name %q", t.name)
		}
		if _, ok := l.byPDG[t.pdg]; ok {
			return nil, fmt.Errorf("duplicate PDG code %d (%s)", t.pdg, t.name)
		}
		t.index = i
		l.byName[t.name] = t
		l.byPDG[t.pdg] = t
	}
	for _, m := range multiplets {
		if _, ok := l.multiplets[m.name]; ok {
			return nil, fmt.Errorf("duplicate multiplet name %q", m.name)
		}
		l.multiplets[m.name] = m
	}
	// Antiparticle links: negated PDG code, if present and distinct.
	for _, t := range types {
		if a, ok := l.byPDG[t.pdg.Anti()]; ok && a != t {
			t.anti = a
		}
	}
	// Conjugate multiplets follow from the states' antiparticles. A
	// multiplet whose states conjugate into itself is self-conjugate.
	for _, m := range multiplets {
		first := m.states[0]
		if first.anti != nil {
			m.anti = first.anti.multiplet
		} else {
			m.anti = m
		}
	}
	return l, nil
}

// Len returns the number of species.
func (l *List) Len() int { return len(l.types) }

// All returns every species in index order. The slice must not be
// modified.
func (l *List) All() []*Type { return l.types }

// TryFind returns the species with the given name, or nil.
func (l *List) TryFind(name string) *Type { return l.byName[name] }

// Find returns the species with the given name or an error.
func (l *List) Find(name string) (*Type, error) {
	if t := l.byName[name]; t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("particle %q not found", name)
}

// FindPDG returns the species with the given PDG code, or nil.
func (l *List) FindPDG(pdg PDG) *Type { return l.byPDG[pdg] }

// TryFindMultiplet returns the multiplet with the given name, or nil.
func (l *List) TryFindMultiplet(name string) *Multiplet { return l.multiplets[name] }

// FindMultiplet returns the multiplet with the given name or an error.
func (l *List) FindMultiplet(name string) (*Multiplet, error) {
	if m := l.multiplets[name]; m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("isospin multiplet %q not found", name)
}
