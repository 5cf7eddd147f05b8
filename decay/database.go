// Package decay builds and serves the decay catalogue of a particle
// list: per-species branching tables expanded over isospin multiplets,
// mass-dependent widths, normalized spectral functions and resonance-mass
// sampling. A Database is constructed once from the frozen catalogue and
// the decay-mode records; afterwards its tables are immutable and safe to
// share, while the small per-species numeric caches are guarded
// internally.
package decay

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/pthm-cable/resonance/kinematics"
	"github.com/pthm-cable/resonance/particle"
)

const (
	// reallySmall is the generic numerical tolerance.
	reallySmall = kinematics.ReallySmall
	// widthCutoff floors tiny widths to exactly zero so later divisions
	// stay stable. It doubles as the stability threshold.
	widthCutoff = particle.WidthCutoff
	// normIntegrationNodes is the fixed-rule node count for the spectral
	// normalization integral.
	normIntegrationNodes = 240
	// widthIntegrationNodes is the node count for the width integrals
	// inside tabulations.
	widthIntegrationNodes = 72
)

// speciesCache holds the lazily computed per-species numbers. All fields
// are create-on-first-use; the envelope factors additionally grow
// monotonically during sampling. The mutex serializes every access.
type speciesCache struct {
	mu          sync.Mutex
	minMassKin  float64
	minMassSpec float64
	normFactor  float64
	maxFactor1  float64 // single-resonance rejection envelope scale
	maxFactor2  float64 // paired-resonance rejection envelope scale
}

// Database owns the decay tables and decay types of one particle
// catalogue plus the per-species numeric caches.
type Database struct {
	list   *particle.List
	types  []*Type
	tables []*Table
	caches []speciesCache
}

var emptyTable = &Table{}

func newDatabase(list *particle.List) *Database {
	d := &Database{
		list:   list,
		tables: make([]*Table, list.Len()),
		caches: make([]speciesCache, list.Len()),
	}
	for i := range d.caches {
		c := &d.caches[i]
		c.minMassKin = math.NaN()
		c.minMassSpec = math.NaN()
		c.normFactor = math.NaN()
		c.maxFactor1 = 1
		c.maxFactor2 = 1
	}
	return d
}

// List returns the particle catalogue the database was built from.
func (d *Database) List() *particle.List { return d.list }

// Table returns the decay table of the given species. Stable species get
// a shared empty table.
func (d *Database) Table(sp *particle.Type) *Table {
	if t := d.tables[sp.Index()]; t != nil {
		return t
	}
	return emptyTable
}

// getType canonicalizes (daughters, L) into one shared decay type,
// creating it on first request.
func (d *Database) getType(mother *particle.Type, daughters []*particle.Type, L int) (*Type, error) {
	for _, t := range d.types {
		if t.hasMother(mother) && t.hasDaughters(daughters) && t.l == L {
			return t, nil
		}
	}
	t, err := newType(mother, daughters, L)
	if err != nil {
		return nil, err
	}
	d.types = append(d.types, t)
	return t, nil
}

// Threshold returns the energy threshold of a decay type: the sum of the
// kinematic minimum masses of its daughters.
func (d *Database) Threshold(t *Type) float64 {
	sum := 0.0
	for _, dau := range t.daughters {
		sum += d.MinMassKinematic(dau)
	}
	return sum
}

// PartialWidth returns the mass-dependent partial width of one branch at
// resonance mass m.
func (d *Database) PartialWidth(sp *particle.Type, m float64, b *Branch) float64 {
	if m < d.Threshold(b.typ) {
		return 0
	}
	poleWidth := sp.WidthAtPole() * b.weight
	return d.typeWidth(b.typ, sp.Mass(), poleWidth, m)
}

// TotalWidth returns the mass-dependent total width: the sum of all
// partial widths, floored to zero below the width cutoff.
func (d *Database) TotalWidth(sp *particle.Type, m float64) float64 {
	if sp.IsStable() {
		return 0
	}
	w := 0.0
	for _, b := range d.Table(sp).Branches() {
		w += d.PartialWidth(sp, m, b)
	}
	if w < widthCutoff {
		return 0
	}
	return w
}

// PartialWidthFor returns the partial width of sp at mass m into the
// given daughter set, summed over matching branches.
func (d *Database) PartialWidthFor(sp *particle.Type, m float64, daughters ...*particle.Type) float64 {
	w := 0.0
	for _, b := range d.Table(sp).Branches() {
		if b.typ.hasDaughters(daughters) {
			w += d.typeWidth(b.typ, sp.Mass(), sp.WidthAtPole()*b.weight, m)
		}
	}
	return w
}

// MinMassKinematic returns the lowest mass the species can assume in any
// decay: the smallest branch threshold, or the pole mass if stable.
// Computed on first use and cached.
func (d *Database) MinMassKinematic(sp *particle.Type) float64 {
	c := &d.caches[sp.Index()]
	c.mu.Lock()
	v := c.minMassKin
	c.mu.Unlock()
	if !math.IsNaN(v) {
		return v
	}
	v = sp.Mass()
	if !sp.IsStable() {
		for _, b := range d.Table(sp).Branches() {
			if thr := d.Threshold(b.typ); thr < v {
				v = thr
			}
		}
	}
	c.mu.Lock()
	c.minMassKin = v
	c.mu.Unlock()
	return v
}

// MinMassSpectral returns the lowest mass with non-negligible spectral
// weight. It equals MinMassKinematic unless the spectral function
// vanishes there, in which case the edge is found by bisection.
func (d *Database) MinMassSpectral(sp *particle.Type) float64 {
	c := &d.caches[sp.Index()]
	c.mu.Lock()
	v := c.minMassSpec
	c.mu.Unlock()
	if !math.IsNaN(v) {
		return v
	}
	v = d.MinMassKinematic(sp)
	if !sp.IsStable() && d.SpectralFunction(sp, v) < reallySmall {
		const (
			step      = 0.01
			precision = 1e-6
		)
		// Step outward until the spectral function is visible, then
		// bisect down to the edge.
		right := v
		for i := 1; d.SpectralFunction(sp, right) <= reallySmall; i++ {
			right = v + step*float64(i)
		}
		left := right - step
		for right-left > precision {
			mid := 0.5 * (left + right)
			if d.SpectralFunction(sp, mid) > reallySmall {
				right = mid
			} else {
				left = mid
			}
		}
		v = right
	}
	c.mu.Lock()
	c.minMassSpec = v
	c.mu.Unlock()
	return v
}

// spectralNoNorm is the relativistic Breit-Wigner with mass-dependent
// width, without normalization.
func (d *Database) spectralNoNorm(sp *particle.Type, m float64) float64 {
	w := d.TotalWidth(sp, m)
	if w < widthCutoff {
		return 0
	}
	return kinematics.BreitWigner(m, sp.Mass(), w)
}

// SpectralFunction returns the normalized spectral function at mass m.
// The normalization constant is computed once by integrating the
// unnormalized shape over m = m0 + Gamma0*tan(x), which maps the
// semi-infinite mass integral onto a finite interval.
func (d *Database) SpectralFunction(sp *particle.Type, m float64) float64 {
	c := &d.caches[sp.Index()]
	c.mu.Lock()
	norm := c.normFactor
	c.mu.Unlock()
	if math.IsNaN(norm) {
		pole := sp.Mass()
		width := sp.WidthAtPole()
		xMin := math.Atan((d.MinMassKinematic(sp) - pole) / width)
		integral := quad.Fixed(func(x float64) float64 {
			tanx := math.Tan(x)
			jacobian := width * (1 + tanx*tanx)
			return d.spectralNoNorm(sp, pole+width*tanx) * jacobian
		}, xMin, math.Pi/2, normIntegrationNodes, nil, 0)
		norm = 1 / integral
		c.mu.Lock()
		c.normFactor = norm
		c.mu.Unlock()
	}
	return norm * d.spectralNoNorm(sp, m)
}

// SpectralFunctionConstWidth is the relativistic Breit-Wigner evaluated
// with the constant pole width, unnormalized.
func (d *Database) SpectralFunctionConstWidth(sp *particle.Type, m float64) float64 {
	if sp.WidthAtPole() < widthCutoff {
		return 0
	}
	return kinematics.BreitWigner(m, sp.Mass(), sp.WidthAtPole())
}

// SpectralFunctionSimple is the non-relativistic Breit-Wigner (Cauchy)
// shape used as the sampling proposal density.
func (d *Database) SpectralFunctionSimple(sp *particle.Type, m float64) float64 {
	return kinematics.BreitWignerNonRel(m, sp.Mass(), sp.WidthAtPole())
}

// Precompute warms every lazy per-species cache single-threaded, so
// parallel simulation workers only ever read them.
func (d *Database) Precompute() {
	for _, sp := range d.list.All() {
		if sp.IsStable() {
			continue
		}
		d.MinMassKinematic(sp)
		d.SpectralFunction(sp, sp.Mass())
		d.MinMassSpectral(sp)
	}
}

// envelope1 returns the single-resonance rejection-envelope scale.
func (d *Database) envelope1(sp *particle.Type) float64 {
	c := &d.caches[sp.Index()]
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxFactor1
}

// growEnvelope1 scales the single-resonance envelope up by ratio.
func (d *Database) growEnvelope1(sp *particle.Type, ratio float64) {
	c := &d.caches[sp.Index()]
	c.mu.Lock()
	c.maxFactor1 *= ratio
	c.mu.Unlock()
}

// envelope2 returns the paired-resonance rejection-envelope scale.
func (d *Database) envelope2(sp *particle.Type) float64 {
	c := &d.caches[sp.Index()]
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxFactor2
}

// growEnvelope2 scales the paired-resonance envelope up by ratio.
func (d *Database) growEnvelope2(sp *particle.Type, ratio float64) {
	c := &d.caches[sp.Index()]
	c.mu.Lock()
	c.maxFactor2 *= ratio
	c.mu.Unlock()
}
