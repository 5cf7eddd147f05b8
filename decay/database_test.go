package decay

import (
	"math"
	"testing"

	"github.com/pthm-cable/resonance/kinematics"
	"github.com/pthm-cable/resonance/particle"
)

func TestMinMasses(t *testing.T) {
	list, m, a, _ := baseList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a"))

	if got := db.MinMassKinematic(a); got != a.Mass() {
		t.Errorf("stable minimum mass = %v, want pole mass", got)
	}
	if got := db.MinMassKinematic(m); got != 0.6 {
		t.Errorf("kinematic minimum mass = %v, want 0.6", got)
	}
	edge := db.MinMassSpectral(m)
	if edge < 0.6 || edge > 0.61 {
		t.Fatalf("spectral minimum mass = %v, want just above 0.6", edge)
	}
	if got := db.SpectralFunction(m, edge+1e-3); got <= reallySmall {
		t.Errorf("spectral function above the edge = %v, want visible", got)
	}
	if got := db.SpectralFunction(m, 0.5); got != 0 {
		t.Errorf("spectral function below threshold = %v, want 0", got)
	}
}

func TestTotalWidthStable(t *testing.T) {
	list, m, a, _ := baseList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a"))
	if got := db.TotalWidth(a, 0.7); got != 0 {
		t.Errorf("stable total width = %v, want 0", got)
	}
	if got := db.TotalWidth(m, 0.55); got != 0 {
		t.Errorf("total width below threshold = %v, want 0", got)
	}
	// Single open channel: the partial width into it is the total width.
	w := db.TotalWidth(m, 0.9)
	if w <= 0 {
		t.Fatalf("total width at 0.9 = %v, want positive", w)
	}
	if got := db.PartialWidthFor(m, 0.9, a, a); math.Abs(got-w) > 1e-15 {
		t.Errorf("partial width for a a = %v, want %v", got, w)
	}
}

func TestSpectralNormalization(t *testing.T) {
	list, m, _, _ := baseList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a"))

	// Independent check of the normalization: trapezoid over the same
	// tangent substitution the database uses.
	pole, width := m.Mass(), m.WidthAtPole()
	xMin := math.Atan((db.MinMassKinematic(m) - pole) / width)
	xMax := math.Pi/2 - 1e-7
	const n = 40000
	h := (xMax - xMin) / n
	sum := 0.0
	for i := 0; i <= n; i++ {
		x := xMin + float64(i)*h
		tanx := math.Tan(x)
		v := db.SpectralFunction(m, pole+width*tanx) * width * (1 + tanx*tanx)
		if i == 0 || i == n {
			v /= 2
		}
		sum += v
	}
	if math.Abs(sum*h-1) > 0.02 {
		t.Errorf("spectral integral = %v, want ~1", sum*h)
	}
}

func TestSpectralIdempotent(t *testing.T) {
	list, m, _, _ := baseList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a"))
	db.Precompute()
	first := db.SpectralFunction(m, 0.9)
	second := db.SpectralFunction(m, 0.9)
	if first != second {
		t.Errorf("spectral function not reproducible: %v != %v", first, second)
	}
	w1, w2 := db.TotalWidth(m, 0.9), db.TotalWidth(m, 0.9)
	if w1 != w2 {
		t.Errorf("total width not reproducible: %v != %v", w1, w2)
	}
}

func TestSpectralNonNegative(t *testing.T) {
	list, m, _, _ := baseList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a"))
	for mm := 0.1; mm < 3.0; mm += 0.01 {
		if sf := db.SpectralFunction(m, mm); sf < 0 || math.IsNaN(sf) {
			t.Fatalf("spectral function at %v = %v", mm, sf)
		}
	}
}

func TestSimpleShapes(t *testing.T) {
	list, m, _, _ := baseList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a"))
	want := kinematics.BreitWignerNonRel(0.9, m.Mass(), m.WidthAtPole())
	if got := db.SpectralFunctionSimple(m, 0.9); got != want {
		t.Errorf("simple shape = %v, want %v", got, want)
	}
	want = kinematics.BreitWigner(0.9, m.Mass(), m.WidthAtPole())
	if got := db.SpectralFunctionConstWidth(m, 0.9); got != want {
		t.Errorf("constant-width shape = %v, want %v", got, want)
	}
}

// semistableList adds an unstable singlet S decaying into M a, so the
// M spectral function enters the S width through the folded integral.
func semistableList(t *testing.T) (*particle.List, *particle.Type) {
	t.Helper()
	a, ma := singlet("a", 0.3, 0, particle.ParityNeg, 101, 0)
	m, mm := singlet("M", 1.0, 0.1, particle.ParityPos, 105, 0)
	s, ms := singlet("S", 1.5, 0.2, particle.ParityNeg, 107, 0)
	list := mustList(t, []*particle.Type{a, m, s}, []*particle.Multiplet{ma, mm, ms})
	return list, s
}

func TestSemistableWidth(t *testing.T) {
	list, s := semistableList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a", "S", "1.  0  M a"))

	branches := db.Table(s).Branches()
	if len(branches) != 1 {
		t.Fatalf("got %d branches, want 1", len(branches))
	}
	typ := branches[0].Type()
	if typ.Kind() != TwoBodySemistable {
		t.Fatalf("kind = %v, want semistable", typ.Kind())
	}
	// Stable daughter is canonicalized to the front.
	if !typ.Daughters()[0].IsStable() || typ.Daughters()[1].IsStable() {
		t.Error("daughter order not canonicalized")
	}
	if typ.lambda != 1.6 {
		t.Errorf("form-factor cutoff = %v, want 1.6 for an unstable meson", typ.lambda)
	}

	// At the pole the density ratio and Post form factor are both one.
	if got := db.TotalWidth(s, s.Mass()); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("width at pole = %v, want 0.2", got)
	}
	if got := db.TotalWidth(s, 0.8); got != 0 {
		t.Errorf("width below threshold = %v, want 0", got)
	}
	// The folded width opens smoothly above threshold.
	w1, w2 := db.TotalWidth(s, 1.0), db.TotalWidth(s, 1.3)
	if !(w1 > 0 && w1 < w2) {
		t.Errorf("width not opening with mass: %v then %v", w1, w2)
	}
}

func TestUnstableWidth(t *testing.T) {
	a, ma := singlet("a", 0.3, 0, particle.ParityNeg, 101, 0)
	m, mm := singlet("M", 1.0, 0.1, particle.ParityPos, 105, 0)
	u, mu := singlet("U", 2.1, 0.3, particle.ParityPos, 109, 0)
	list := mustList(t, []*particle.Type{a, m, u}, []*particle.Multiplet{ma, mm, mu})
	db := mustDB(t, list, mkLines("M", "1.  0  a a", "U", "1.  0  M M"))

	typ := db.Table(u).Branches()[0].Type()
	if typ.Kind() != TwoBodyUnstable {
		t.Fatalf("kind = %v, want unstable", typ.Kind())
	}
	if typ.lambda != 0.6 {
		t.Errorf("form-factor cutoff = %v, want 0.6", typ.lambda)
	}
	if got := db.TotalWidth(u, u.Mass()); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("width at pole = %v, want 0.3", got)
	}
	if got := db.TotalWidth(u, 1.1); got != 0 {
		t.Errorf("width below threshold = %v, want 0", got)
	}
}

func TestDileptonWidth(t *testing.T) {
	el := particle.New("e⁻", 0.000511, 0, particle.ParityPos, 11, -1, 1, 0, 0)
	po := particle.New("e⁺", 0.000511, 0, particle.ParityNeg, -11, 1, 1, 0, 0)
	v, mv := singlet("V", 0.776, 0.149, particle.ParityNeg, 113, 2)
	list := mustList(t, []*particle.Type{el, po, v}, []*particle.Multiplet{mv})
	db := mustDB(t, list, mkLines("V", "1.  0  e⁻ e⁺"))

	typ := db.Table(v).Branches()[0].Type()
	if typ.Kind() != TwoBodyDilepton {
		t.Fatalf("kind = %v, want dilepton", typ.Kind())
	}
	// At the pole the analytic width reduces to almost exactly the pole
	// width, the lepton-mass corrections being tiny.
	if got := db.TotalWidth(v, v.Mass()); math.Abs(got-0.149) > 1e-4 {
		t.Errorf("width at pole = %v, want ~0.149", got)
	}
	if got := db.TotalWidth(v, 0.0005); got != 0 {
		t.Errorf("width below the lepton-pair threshold = %v, want 0", got)
	}
	// Below the pole the (m0/m)^3 factor enhances the width.
	if db.TotalWidth(v, 0.1) <= db.TotalWidth(v, 0.776) {
		t.Error("no low-mass dilepton enhancement")
	}
}

func TestThresholds(t *testing.T) {
	list, s := semistableList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a", "S", "1.  0  M a"))
	// The S threshold folds in the kinematic minimum of M, not its pole.
	typ := db.Table(s).Branches()[0].Type()
	if got := db.Threshold(typ); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("threshold = %v, want 0.9", got)
	}
}

func TestEnvelopeGrowth(t *testing.T) {
	list, m, _, _ := baseList(t)
	db := mustDB(t, list, mkLines("M", "1.  0  a a"))
	if got := db.envelope1(m); got != 1 {
		t.Fatalf("initial envelope = %v, want 1", got)
	}
	db.growEnvelope1(m, 1.5)
	db.growEnvelope1(m, 2)
	if got := db.envelope1(m); math.Abs(got-3) > 1e-12 {
		t.Errorf("grown envelope = %v, want 3", got)
	}
	db.growEnvelope2(m, 4)
	if got := db.envelope2(m); got != 4 {
		t.Errorf("paired envelope = %v, want 4", got)
	}
	if got := db.envelope1(m); math.Abs(got-3) > 1e-12 {
		t.Error("paired growth must not touch the single envelope")
	}
}
