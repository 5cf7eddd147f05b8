package decay

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pthm-cable/resonance/kinematics"
	"github.com/pthm-cable/resonance/particle"
)

// Kind enumerates the closed set of decay-type variants. The variant
// decides how the mass-dependent partial width is computed.
type Kind int

const (
	// TwoBodyStable is a two-body decay into two stable daughters.
	TwoBodyStable Kind = iota
	// TwoBodySemistable has one stable and one unstable daughter.
	TwoBodySemistable
	// TwoBodyUnstable has two unstable daughters.
	TwoBodyUnstable
	// TwoBodyDilepton is a decay into a lepton/antilepton pair.
	TwoBodyDilepton
	// ThreeBody is a generic three-body decay.
	ThreeBody
	// ThreeBodyDilepton is a Dalitz decay with a lepton pair in the
	// final state.
	ThreeBodyDilepton
)

func (k Kind) String() string {
	switch k {
	case TwoBodyStable:
		return "two-body stable"
	case TwoBodySemistable:
		return "two-body semistable"
	case TwoBodyUnstable:
		return "two-body unstable"
	case TwoBodyDilepton:
		return "two-body dilepton"
	case ThreeBody:
		return "three-body"
	case ThreeBodyDilepton:
		return "three-body dilepton"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type is one deduplicated decay type: an ordered daughter set plus the
// orbital angular momentum L. Types are created once per database and
// shared by reference, so branch accumulation can rely on identity.
type Type struct {
	kind      Kind
	daughters []*particle.Type
	l         int

	// Post form-factor cutoff, semistable and unstable kinds only.
	lambda float64

	// Dalitz decays need the mother to evaluate the differential width.
	mother *particle.Type

	// Lazily built width tabulation (semistable, unstable, Dalitz).
	tabOnce sync.Once
	tab     *tabulation
}

// Kind returns the variant of this decay type.
func (t *Type) Kind() Kind { return t.kind }

// Daughters returns the daughter species. For semistable decays the
// stable daughter comes first; three-body daughters are in catalogue
// order. The slice must not be modified.
func (t *Type) Daughters() []*particle.Type { return t.daughters }

// AngularMomentum returns the orbital angular momentum L.
func (t *Type) AngularMomentum() int { return t.l }

// IsDilepton reports whether the final state contains a lepton pair.
func (t *Type) IsDilepton() bool {
	return t.kind == TwoBodyDilepton || t.kind == ThreeBodyDilepton
}

func (t *Type) String() string {
	s := ""
	for i, d := range t.daughters {
		if i > 0 {
			s += " "
		}
		s += d.Name()
	}
	return fmt.Sprintf("[%s, L=%d]", s, t.l)
}

// hasDaughters reports whether list denotes the same daughter set,
// irrespective of order.
func (t *Type) hasDaughters(list []*particle.Type) bool {
	if len(list) != len(t.daughters) {
		return false
	}
	switch len(list) {
	case 2:
		return (t.daughters[0] == list[0] && t.daughters[1] == list[1]) ||
			(t.daughters[0] == list[1] && t.daughters[1] == list[0])
	case 3:
		sorted := sortedByIndex(list)
		return t.daughters[0] == sorted[0] && t.daughters[1] == sorted[1] &&
			t.daughters[2] == sorted[2]
	}
	return false
}

// hasMother reports whether the type may serve the given mother. Only
// Dalitz decays are mother-specific.
func (t *Type) hasMother(mother *particle.Type) bool {
	if t.kind == ThreeBodyDilepton {
		return t.mother == mother
	}
	return true
}

func sortedByIndex(list []*particle.Type) []*particle.Type {
	s := make([]*particle.Type, len(list))
	copy(s, list)
	sort.Slice(s, func(i, j int) bool { return s[i].Index() < s[j].Index() })
	return s
}

// newType classifies and constructs a decay type. The daughter slice is
// copied and canonicalized.
func newType(mother *particle.Type, daughters []*particle.Type, L int) (*Type, error) {
	switch len(daughters) {
	case 2:
		if L > kinematics.MaxBarrierL {
			return nil, &InvalidDecayError{
				Violation: ViolationAngularMomentum,
				Msg: fmt.Sprintf("%s decay with L=%d beyond the supported barrier factors",
					mother.Name(), L),
			}
		}
		d := []*particle.Type{daughters[0], daughters[1]}
		switch {
		case particle.IsDilepton(d[0].PDG(), d[1].PDG()):
			return &Type{kind: TwoBodyDilepton, daughters: d, l: L}, nil
		case d[0].IsStable() && d[1].IsStable():
			return &Type{kind: TwoBodyStable, daughters: d, l: L}, nil
		case d[0].IsStable() || d[1].IsStable():
			if d[1].IsStable() {
				d[0], d[1] = d[1], d[0] // stable daughter first
			}
			t := &Type{kind: TwoBodySemistable, daughters: d, l: L}
			t.lambda = semistableLambda(d[1], d[0])
			return t, nil
		default:
			// Fixed on f2 -> rho rho; used for all unstable-unstable decays.
			return &Type{kind: TwoBodyUnstable, daughters: d, l: L, lambda: 0.6}, nil
		}
	case 3:
		d := sortedByIndex(daughters)
		if particle.HasLeptonPair(d[0].PDG(), d[1].PDG(), d[2].PDG()) {
			t := &Type{kind: ThreeBodyDilepton, daughters: d, l: L, mother: mother}
			if t.nonLepton() == nil {
				return nil, &InvalidDecayError{
					Violation: ViolationDaughterCount,
					Msg:       "unsupported dilepton Dalitz decay of " + mother.Name(),
				}
			}
			return t, nil
		}
		return &Type{kind: ThreeBody, daughters: d, l: L}, nil
	}
	return nil, &InvalidDecayError{
		Violation: ViolationDaughterCount,
		Msg: fmt.Sprintf("%s decay mode with %d particles in the final state",
			mother.Name(), len(daughters)),
	}
}

// semistableLambda returns the Post form-factor cutoff for a semistable
// decay with the given unstable and stable daughters.
func semistableLambda(unstable, stable *particle.Type) float64 {
	if unstable.BaryonNumber() != 0 {
		return 2.0 // unstable baryons
	}
	if isRho(unstable.PDG()) && isPion(stable.PDG()) {
		return 0.8 // rho pi
	}
	return 1.6 // other unstable mesons
}

func isRho(p particle.PDG) bool {
	a := p
	if a < 0 {
		a = -a
	}
	return a == 113 || a == 213
}

func isPion(p particle.PDG) bool {
	a := p
	if a < 0 {
		a = -a
	}
	return a == 111 || a == 211
}

// nonLepton returns the non-leptonic daughter of a Dalitz decay, or nil.
func (t *Type) nonLepton() *particle.Type {
	for _, d := range t.daughters {
		if !d.IsLepton() {
			return d
		}
	}
	return nil
}

// leptonMass returns the mass of the sampled lepton of a Dalitz decay.
func (t *Type) leptonMass() float64 {
	for _, d := range t.daughters {
		if d.IsLepton() {
			return d.Mass()
		}
	}
	return 0
}
