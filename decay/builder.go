package decay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm-cable/resonance/isospin"
	"github.com/pthm-cable/resonance/particle"
)

// Line is one raw decay-mode record with its 1-based position in the
// original input. Comment and blank lines are stripped upstream without
// renumbering.
type Line struct {
	Number int
	Text   string
}

// NewDatabase builds the full decay database from the frozen particle
// catalogue and the decay-mode records. Records are grouped into
// sections: a bare multiplet name starts a section, every other line is
// "ratio L daughter..." for that multiplet. Construction either succeeds
// completely or fails with no partial tables escaping.
func NewDatabase(list *particle.List, lines []Line) (*Database, error) {
	b := &builder{db: newDatabase(list), list: list}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line.Text)
		if trimmed == "" {
			continue
		}
		var err error
		if !strings.ContainsAny(trimmed, " \t") {
			err = b.startSection(line, trimmed)
		} else {
			err = b.dataLine(line, trimmed)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := b.endSection(); err != nil {
		return nil, err
	}
	if err := b.finish(); err != nil {
		return nil, err
	}
	return b.db, nil
}

type builder struct {
	db   *Database
	list *particle.List

	mother       *particle.Multiplet
	motherStates []*particle.Type
	tablesToAdd  []*Table

	largeRenormalizations int
}

// startSection finalizes the previous section and opens one for the
// named multiplet.
func (b *builder) startSection(line Line, name string) error {
	if err := b.endSection(); err != nil {
		return err
	}
	m := b.list.TryFindMultiplet(name)
	if m == nil {
		return &LoadError{Line: line.Number, Text: line.Text,
			Msg: fmt.Sprintf("isospin multiplet %q not found", name)}
	}
	for _, state := range m.States() {
		if b.db.tables[state.Index()] != nil {
			return &LoadError{Line: line.Number, Text: line.Text,
				Msg: "duplicate decay-mode entry for " + name}
		}
	}
	b.mother = m
	b.motherStates = m.States()
	b.tablesToAdd = make([]*Table, len(b.motherStates))
	for i := range b.tablesToAdd {
		b.tablesToAdd[i] = &Table{}
	}
	logf("reading decay modes for %s", name)
	return nil
}

// endSection validates, renormalizes and installs the tables of the
// current section, then mirrors them onto the anti-multiplet.
func (b *builder) endSection() error {
	if b.mother == nil { // before the first header
		return nil
	}
	for i, state := range b.motherStates {
		tbl := b.tablesToAdd[i]
		if tbl.IsEmpty() && !state.IsStable() {
			return &MissingDecaysError{Name: state.Name()}
		}
		if tbl.renormalize(state.Name()) {
			b.largeRenormalizations++
		}
		b.db.tables[state.Index()] = tbl
	}
	if b.mother.HasAnti() {
		logf("generating decay modes for anti-multiplet of %s", b.mother.Name())
		for _, state := range b.motherStates {
			anti := state.Anti()
			antiTable := &Table{}
			for _, branch := range b.db.tables[state.Index()].branches {
				daughters := make([]*particle.Type, len(branch.typ.daughters))
				for j, dau := range branch.typ.daughters {
					if dau.HasAnti() {
						daughters[j] = dau.Anti()
					} else {
						daughters[j] = dau
					}
				}
				typ, err := b.db.getType(anti, daughters, branch.typ.l)
				if err != nil {
					return err
				}
				antiTable.addMode(typ, branch.weight)
			}
			b.db.tables[anti.Index()] = antiTable
		}
	}
	b.mother = nil
	b.motherStates = nil
	b.tablesToAdd = nil
	return nil
}

// dataLine processes one "ratio L daughter..." record.
func (b *builder) dataLine(line Line, trimmed string) error {
	if b.mother == nil {
		return &LoadError{Line: line.Number, Text: line.Text,
			Msg: "decay mode data before any multiplet header"}
	}
	fields := strings.Fields(trimmed)
	if len(fields) < 3 {
		return &LoadError{Line: line.Number, Text: line.Text,
			Msg: "expected: ratio L daughter..."}
	}
	ratio, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return &LoadError{Line: line.Number, Text: line.Text,
			Msg: "invalid branching ratio " + strconv.Quote(fields[0])}
	}
	l, err := strconv.Atoi(fields[1])
	if err != nil || l < 0 {
		return &LoadError{Line: line.Number, Text: line.Text,
			Msg: "invalid angular momentum " + strconv.Quote(fields[1])}
	}
	names := fields[2:]

	// The line is in multiplet mode only if every daughter token names a
	// purely hadronic isospin multiplet.
	multi := true
	for _, name := range names {
		mult := b.list.TryFindMultiplet(name)
		isState := b.list.TryFind(name) != nil
		if mult == nil && !isState {
			return &InvalidDecayError{Violation: ViolationMissingDaughter,
				Line: line.Number, Text: line.Text,
				Msg: fmt.Sprintf("daughter %s is neither an isospin multiplet nor a particle", name)}
		}
		multi = multi && mult != nil && mult.States()[0].IsHadron()
	}

	var (
		parity     particle.Parity
		minL, maxL int
	)
	s0 := b.mother.Spin()
	if multi {
		switch len(names) {
		case 2:
			d1 := b.list.TryFindMultiplet(names[0])
			d2 := b.list.TryFindMultiplet(names[1])
			parity = d1.Parity().Times(d2.Parity())
			minL, maxL, err = AngularMomentumRange2(s0, d1.Spin(), d2.Spin())
			if err != nil {
				return &LoadError{Line: line.Number, Text: line.Text, Msg: err.Error()}
			}
			forbidden := true
			for m, mom := range b.motherStates {
				for _, dau1 := range d1.States() {
					for _, dau2 := range d2.States() {
						cgSqr := isospin.CouplingSqr2To1(isoState(dau1), isoState(dau2), isoState(mom))
						if cgSqr > 0 {
							logf("decay mode generated: %s -> %s %s (%g)",
								mom.Name(), dau1.Name(), dau2.Name(), ratio*cgSqr)
							if err := b.addMode(m, mom, ratio*cgSqr, l,
								dau1, dau2); err != nil {
								return lineError(err, line)
							}
							forbidden = false
						}
					}
				}
			}
			if forbidden {
				return &InvalidDecayError{Violation: ViolationIsospin,
					Line: line.Number, Text: line.Text,
					Msg: fmt.Sprintf("%s decay mode is forbidden by isospin (2I mother: %d, daughters: %d %d)",
						b.mother.Name(), b.mother.Isospin(), d1.Isospin(), d2.Isospin())}
			}
		case 3:
			d1 := b.list.TryFindMultiplet(names[0])
			d2 := b.list.TryFindMultiplet(names[1])
			d3 := b.list.TryFindMultiplet(names[2])
			parity = d1.Parity().Times(d2.Parity()).Times(d3.Parity())
			minL, maxL, err = AngularMomentumRange3(s0, d1.Spin(), d2.Spin(), d3.Spin())
			if err != nil {
				return &LoadError{Line: line.Number, Text: line.Text, Msg: err.Error()}
			}
			for m, mom := range b.motherStates {
				for _, dau1 := range d1.States() {
					for _, dau2 := range d2.States() {
						for _, dau3 := range d3.States() {
							cgSqr := isospin.CouplingSqr3To1(isoState(dau1),
								isoState(dau2), isoState(dau3), isoState(mom))
							if cgSqr > 0 {
								logf("decay mode generated: %s -> %s %s %s (%g)",
									mom.Name(), dau1.Name(), dau2.Name(), dau3.Name(), ratio*cgSqr)
								if err := b.addMode(m, mom, ratio*cgSqr, l,
									dau1, dau2, dau3); err != nil {
									return lineError(err, line)
								}
							}
						}
					}
				}
			}
		default:
			return &InvalidDecayError{Violation: ViolationDaughterCount,
				Line: line.Number, Text: line.Text,
				Msg: "isospin-multiplet daughters are only allowed in two- or three-body decays of " +
					b.mother.Name()}
		}
	} else {
		// Explicit charge states: resolve each daughter and match mother
		// states by total charge.
		types := make([]*particle.Type, 0, 3)
		charge := 0
		parity = particle.ParityPos
		for _, name := range names {
			t := b.list.TryFind(name)
			if t == nil {
				return &LoadError{Line: line.Number, Text: line.Text,
					Msg: fmt.Sprintf("daughter %s does not name a single charge state", name)}
			}
			types = append(types, t)
			charge += t.Charge()
			parity = parity.Times(t.Parity())
		}
		switch len(types) {
		case 2:
			minL, maxL, err = AngularMomentumRange2(s0, types[0].Spin(), types[1].Spin())
		case 3:
			minL, maxL, err = AngularMomentumRange3(s0, types[0].Spin(), types[1].Spin(), types[2].Spin())
		default:
			return &InvalidDecayError{Violation: ViolationDaughterCount,
				Line: line.Number, Text: line.Text,
				Msg: fmt.Sprintf("%s decay mode has an invalid number of particles in the final state",
					b.mother.Name())}
		}
		if err != nil {
			return &LoadError{Line: line.Number, Text: line.Text, Msg: err.Error()}
		}
		matched := false
		for m, mom := range b.motherStates {
			if mom.Charge() == charge {
				logf("decay mode found: %s -> %d daughters", mom.Name(), len(types))
				if err := b.addMode(m, mom, ratio, l, types...); err != nil {
					return lineError(err, line)
				}
				matched = true
			}
		}
		if !matched {
			return &InvalidDecayError{Violation: ViolationCharge,
				Line: line.Number, Text: line.Text,
				Msg: b.mother.Name() + " decay mode"}
		}
	}

	// Orbital angular momentum flips the combined intrinsic parity.
	if l%2 == 1 {
		parity = parity.Inverse()
	}
	// Parity is only checked for two-body decays; the three-body
	// bookkeeping is incomplete and deliberately skipped.
	if len(names) == 2 && parity != b.motherStates[0].Parity() {
		return &InvalidDecayError{Violation: ViolationParity,
			Line: line.Number, Text: line.Text,
			Msg: b.motherStates[0].Name() + " decay mode"}
	}
	if l < minL || l > maxL {
		return &InvalidDecayError{Violation: ViolationAngularMomentum,
			Line: line.Number, Text: line.Text,
			Msg: fmt.Sprintf("%s decay mode: L=%d not in [%d, %d]",
				b.motherStates[0].Name(), l, minL, maxL)}
	}
	return nil
}

// addMode registers one decay mode on the in-progress table of mother
// state m.
func (b *builder) addMode(m int, mother *particle.Type, ratio float64, l int, daughters ...*particle.Type) error {
	typ, err := b.db.getType(mother, daughters, l)
	if err != nil {
		return err
	}
	b.tablesToAdd[m].addMode(typ, ratio)
	return nil
}

// finish runs the global post-construction checks.
func (b *builder) finish() error {
	// Every unstable species must have decay modes by now, whether from
	// its own section or by mirroring.
	for _, sp := range b.list.All() {
		if !sp.IsStable() && b.db.Table(sp).IsEmpty() {
			return &MissingDecaysError{Name: sp.Name()}
		}
	}
	// Manley-Saleski: the pole mass must lie strictly above every decay
	// threshold, otherwise the mass-dependent width is ill-defined at
	// the pole.
	for _, sp := range b.list.All() {
		if sp.IsStable() {
			continue
		}
		for _, branch := range b.db.Table(sp).Branches() {
			if thr := b.db.Threshold(branch.typ); sp.Mass() <= thr {
				return &InvalidDecayError{Violation: ViolationThreshold,
					Msg: fmt.Sprintf("%s -> %s with pole mass %g <= threshold %g",
						sp.Name(), branch.typ, sp.Mass(), thr)}
			}
		}
	}
	if b.largeRenormalizations > 0 {
		logf("branching ratios of %d species were renormalized by more than 1%% to have sum 1",
			b.largeRenormalizations)
	}
	return nil
}

func isoState(t *particle.Type) isospin.State {
	return isospin.State{I: t.Isospin(), I3: t.Isospin3()}
}

// lineError attaches line context to errors raised below the line level.
func lineError(err error, line Line) error {
	if e, ok := err.(*InvalidDecayError); ok && e.Line == 0 {
		e.Line = line.Number
		e.Text = line.Text
	}
	return err
}
