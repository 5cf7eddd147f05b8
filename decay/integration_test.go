package decay_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/resonance/catalog"
	"github.com/pthm-cable/resonance/decay"
	"github.com/pthm-cable/resonance/particle"
)

func defaultDB(t *testing.T) (*decay.Database, *particle.List) {
	t.Helper()
	list, lines, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	db, err := decay.NewDatabase(list, lines)
	if err != nil {
		t.Fatal(err)
	}
	return db, list
}

func TestDefaultDatabaseBuilds(t *testing.T) {
	db, list := defaultDB(t)
	db.Precompute()
	for _, sp := range list.All() {
		if sp.IsStable() {
			continue
		}
		if db.Table(sp).IsEmpty() {
			t.Errorf("%s: unstable species without decay table", sp.Name())
		}
	}
}

func TestDefaultWeightsNormalized(t *testing.T) {
	db, list := defaultDB(t)
	for _, sp := range list.All() {
		branches := db.Table(sp).Branches()
		if len(branches) == 0 {
			continue
		}
		sum := 0.0
		for _, b := range branches {
			sum += b.Weight()
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("%s: weights sum to %v", sp.Name(), sum)
		}
	}
}

func TestDefaultConservationLaws(t *testing.T) {
	db, list := defaultDB(t)
	for _, sp := range list.All() {
		for _, b := range db.Table(sp).Branches() {
			var charge, baryon, strange int
			parity := particle.ParityPos
			for _, d := range b.Type().Daughters() {
				charge += d.Charge()
				baryon += d.BaryonNumber()
				strange += d.Strangeness()
				parity = parity.Times(d.Parity())
			}
			if charge != sp.Charge() {
				t.Errorf("%s -> %v: charge %d != %d", sp.Name(), b.Type(), charge, sp.Charge())
			}
			if baryon != sp.BaryonNumber() {
				t.Errorf("%s -> %v: baryon number %d != %d", sp.Name(), b.Type(), baryon, sp.BaryonNumber())
			}
			if strange != sp.Strangeness() {
				t.Errorf("%s -> %v: strangeness %d != %d", sp.Name(), b.Type(), strange, sp.Strangeness())
			}
			if len(b.Type().Daughters()) == 2 {
				if b.Type().AngularMomentum()%2 == 1 {
					parity = parity.Inverse()
				}
				if parity != sp.Parity() {
					t.Errorf("%s -> %v: parity violated", sp.Name(), b.Type())
				}
			}
		}
	}
}

func TestDefaultDecayKinds(t *testing.T) {
	db, list := defaultDB(t)
	wantKind := func(mother string, kind decay.Kind, match func(*decay.Type) bool) {
		t.Helper()
		sp := list.TryFind(mother)
		if sp == nil {
			t.Fatalf("%s missing from catalogue", mother)
		}
		for _, b := range db.Table(sp).Branches() {
			if match(b.Type()) {
				if b.Type().Kind() != kind {
					t.Errorf("%s -> %v: kind %v, want %v", mother, b.Type(), b.Type().Kind(), kind)
				}
				return
			}
		}
		t.Errorf("%s: no branch matched for kind %v", mother, kind)
	}
	hasDaughterPDG := func(pdg particle.PDG) func(*decay.Type) bool {
		return func(typ *decay.Type) bool {
			for _, d := range typ.Daughters() {
				if d.PDG() == pdg {
					return true
				}
			}
			return false
		}
	}
	two := func(typ *decay.Type) bool { return len(typ.Daughters()) == 2 }

	wantKind("σ", decay.TwoBodyStable, two)
	wantKind("ρ⁰", decay.TwoBodyDilepton, hasDaughterPDG(11))
	wantKind("ω", decay.TwoBodySemistable, hasDaughterPDG(113))
	wantKind("ω", decay.ThreeBodyDilepton, func(typ *decay.Type) bool {
		return len(typ.Daughters()) == 3
	})
	wantKind("f₂", decay.TwoBodyUnstable, hasDaughterPDG(113))
	wantKind("Δ⁺⁺", decay.TwoBodyStable, hasDaughterPDG(2212))
}

func TestDefaultAntiMultipletMirroring(t *testing.T) {
	db, list := defaultDB(t)
	delta := list.TryFindMultiplet("Δ")
	if delta == nil || !delta.HasAnti() {
		t.Fatal("Delta multiplet or its conjugate missing")
	}
	for _, state := range delta.States() {
		anti := state.Anti()
		if anti == nil {
			t.Fatalf("%s has no conjugate state", state.Name())
		}
		branches := db.Table(state).Branches()
		antiBranches := db.Table(anti).Branches()
		if len(branches) != len(antiBranches) {
			t.Fatalf("%s: %d branches vs %d on %s",
				state.Name(), len(branches), len(antiBranches), anti.Name())
		}
		for i, b := range branches {
			ab := antiBranches[i]
			if ab.Weight() != b.Weight() {
				t.Errorf("%s branch %d: weight %v != %v", anti.Name(), i, ab.Weight(), b.Weight())
			}
			if ab.Type().AngularMomentum() != b.Type().AngularMomentum() {
				t.Errorf("%s branch %d: L mismatch", anti.Name(), i)
			}
			var wantCharge int
			for _, d := range b.Type().Daughters() {
				wantCharge -= d.Charge()
			}
			var gotCharge int
			for _, d := range ab.Type().Daughters() {
				gotCharge += d.Charge()
			}
			if gotCharge != wantCharge {
				t.Errorf("%s branch %d: daughters not conjugated", anti.Name(), i)
			}
		}
	}
}

func TestDefaultRhoWidth(t *testing.T) {
	db, list := defaultDB(t)
	rho := list.TryFind("ρ⁰")
	// At the pole the pi pi channel reproduces its share of the pole width
	// and the dilepton channel adds its tiny analytic part.
	if got := db.TotalWidth(rho, rho.Mass()); math.Abs(got-0.149) > 2e-3 {
		t.Errorf("rho width at pole = %v, want ~0.149", got)
	}
	// The dilepton channel keeps the spectral function alive far below
	// the two-pion threshold.
	if got := db.MinMassKinematic(rho); math.Abs(got-2*0.000511) > 1e-9 {
		t.Errorf("rho kinematic minimum = %v, want 2 m_e", got)
	}
	if db.SpectralFunction(rho, 0.1) <= 0 {
		t.Error("no spectral weight below the two-pion threshold")
	}
	if got := db.SpectralFunction(rho, 0.0005); got != 0 {
		t.Errorf("spectral weight below the dilepton threshold = %v", got)
	}
}

func TestDefaultOmegaWidth(t *testing.T) {
	db, list := defaultDB(t)
	omega := list.TryFind("ω")
	got := db.TotalWidth(omega, omega.Mass())
	// The rho pi and pi0 gamma channels carry their pole-width shares; the
	// Dalitz channel contributes its own integrated width on top.
	if got < 7e-3 || got > 1e-2 {
		t.Errorf("omega width at pole = %v, want around 8.5e-3", got)
	}
	if db.TotalWidth(omega, 0.4) >= got {
		t.Error("omega width below the rho pi threshold should be small")
	}
}

func TestDefaultSpectralNormalization(t *testing.T) {
	db, list := defaultDB(t)
	rho := list.TryFind("ρ⁰")
	pole, width := rho.Mass(), rho.WidthAtPole()
	xMin := math.Atan((db.MinMassKinematic(rho) - pole) / width)
	xMax := math.Pi/2 - 1e-7
	const n = 60000
	h := (xMax - xMin) / n
	sum := 0.0
	for i := 0; i <= n; i++ {
		x := xMin + float64(i)*h
		tanx := math.Tan(x)
		v := db.SpectralFunction(rho, pole+width*tanx) * width * (1 + tanx*tanx)
		if i == 0 || i == n {
			v /= 2
		}
		sum += v
	}
	if math.Abs(sum*h-1) > 0.03 {
		t.Errorf("rho spectral integral = %v, want ~1", sum*h)
	}
}

func TestDefaultSampling(t *testing.T) {
	db, list := defaultDB(t)
	db.Precompute()
	rho := list.TryFind("ρ⁰")
	pi := list.TryFind("π⁰")
	s := decay.NewSampler(db, rand.NewPCG(21, 42))

	cms := 1.8
	lo := db.MinMassSpectral(rho)
	sum := 0.0
	const n = 3000
	for i := 0; i < n; i++ {
		m := s.SampleMass(rho, pi.Mass(), cms, 1)
		if m < lo || m >= cms-pi.Mass() {
			t.Fatalf("sampled mass %v out of range", m)
		}
		sum += m
	}
	// The bulk of the samples cluster around the pole.
	if mean := sum / n; math.Abs(mean-rho.Mass()) > 0.1 {
		t.Errorf("mean sampled rho mass = %v, want near %v", mean, rho.Mass())
	}
}
