package decay

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/pthm-cable/resonance/kinematics"
	"github.com/pthm-cable/resonance/particle"
)

// typeWidth returns the mass-dependent partial width of a decay type at
// mass m, given the mother's pole mass m0 and the partial width at the
// pole. Dispatch is over the closed variant set.
func (d *Database) typeWidth(t *Type, m0, g0, m float64) float64 {
	switch t.kind {
	case TwoBodyStable:
		if m <= d.Threshold(t) {
			return 0
		}
		return g0 * rhoStable(t, m) / rhoStable(t, m0)
	case TwoBodyDilepton:
		return dileptonWidth(t, m0, g0, m)
	case TwoBodySemistable:
		rho0 := d.rhoSemistable(t, m0)
		return g0 * d.rhoSemistable(t, m) / rho0 *
			kinematics.PostFFSqr(m, m0, d.Threshold(t), t.lambda)
	case TwoBodyUnstable:
		rho0 := d.rhoUnstable(t, m0)
		return g0 * d.rhoUnstable(t, m) / rho0 *
			kinematics.PostFFSqr(m, m0, d.Threshold(t), t.lambda)
	case ThreeBody:
		return g0 // on-shell width
	case ThreeBodyDilepton:
		return d.dalitzWidth(t, g0, m)
	}
	panic(fmt.Sprintf("decay: unknown decay kind %d", t.kind))
}

// rhoStable is the two-body phase-space density p/m weighted by the
// angular-momentum barrier.
func rhoStable(t *Type, m float64) float64 {
	p := kinematics.PCM(m, t.daughters[0].Mass(), t.daughters[1].Mass())
	return p / m * kinematics.BlattWeisskopfSqr(p, t.l)
}

// dileptonWidth is the analytic two-body dilepton width.
func dileptonWidth(t *Type, m0, g0, m float64) float64 {
	ml := t.daughters[0].Mass() // lepton mass
	if m <= t.daughters[0].Mass()+t.daughters[1].Mass() {
		return 0
	}
	mlm := (ml / m) * (ml / m)
	m0m := (m0 / m) * (m0 / m) * (m0 / m)
	return g0 * m0m * math.Sqrt(1-4*mlm) * (1 + 2*mlm)
}

// rhoSemistable folds the two-body density with the spectral function of
// the unstable daughter. The integral is tabulated on first use.
func (d *Database) rhoSemistable(t *Type, m float64) float64 {
	t.tabOnce.Do(func() {
		stable, unstable := t.daughters[0], t.daughters[1]
		interval := math.Max(2, 10*unstable.WidthAtPole())
		thr := d.Threshold(t)
		t.tab = newTabulation(thr, interval, tabulationPoints, func(sqrts float64) float64 {
			lo := d.MinMassKinematic(unstable)
			hi := sqrts - stable.Mass()
			if hi <= lo {
				return 0
			}
			return quad.Fixed(func(mu float64) float64 {
				if sqrts <= mu+stable.Mass() {
					return 0
				}
				p := kinematics.PCM(sqrts, stable.Mass(), mu)
				return p / sqrts * kinematics.BlattWeisskopfSqr(p, t.l) *
					d.SpectralFunction(unstable, mu)
			}, lo, hi, widthIntegrationNodes, nil, 0)
		})
	})
	return t.tab.valueLinear(m)
}

// rhoUnstable folds the two-body density with both daughters' spectral
// functions via a two-dimensional integral, tabulated on first use.
func (d *Database) rhoUnstable(t *Type, m float64) float64 {
	t.tabOnce.Do(func() {
		d1, d2 := t.daughters[0], t.daughters[1]
		m1Min := d.MinMassKinematic(d1)
		m2Min := d.MinMassKinematic(d2)
		interval := math.Max(2, 10*(d1.WidthAtPole()+d2.WidthAtPole()))
		t.tab = newTabulation(m1Min+m2Min, interval, tabulationPoints, func(sqrts float64) float64 {
			hi1 := sqrts - m2Min
			hi2 := sqrts - m1Min
			if hi1 <= m1Min || hi2 <= m2Min {
				return 0
			}
			return quad.Fixed(func(m1 float64) float64 {
				return quad.Fixed(func(m2 float64) float64 {
					if sqrts <= m1+m2 {
						return 0
					}
					p := kinematics.PCM(sqrts, m1, m2)
					return p / sqrts * kinematics.BlattWeisskopfSqr(p, t.l) *
						d.SpectralFunction(d1, m1) * d.SpectralFunction(d2, m2)
				}, m2Min, hi2, widthIntegrationNodes, nil, 0)
			}, m1Min, hi1, widthIntegrationNodes, nil, 0)
		})
	})
	return t.tab.valueLinear(m)
}

// dalitzWidth is the mass-dependent Dalitz dilepton width, obtained by
// integrating the differential width over the dilepton mass. Stable
// mothers keep the on-shell width.
func (d *Database) dalitzWidth(t *Type, g0, m float64) float64 {
	if t.mother.IsStable() {
		return g0
	}
	t.tabOnce.Do(func() {
		ml := t.leptonMass()
		mOther := t.nonLepton().Mass()
		m0 := t.mother.Mass()
		g0Tot := t.mother.WidthAtPole()
		lo := mOther + 2*ml
		t.tab = newTabulation(lo, m0+10*g0Tot, tabulationPoints, func(mParent float64) float64 {
			bottom := 2 * ml
			top := mParent - mOther
			if top < bottom {
				return 0
			}
			return quad.Fixed(func(mDil float64) float64 {
				return d.diffDalitzWidth(t, mParent, mDil)
			}, bottom, top, widthIntegrationNodes, nil, 0)
		})
	})
	return t.tab.valueLinear(m)
}

// diffDalitzWidth is the differential Dalitz width dGamma/dm_dil of the
// mother at mass mPar for dilepton mass mDil.
func (d *Database) diffDalitzWidth(t *Type, mPar, mDil float64) float64 {
	const alpha = kinematics.FineStructure
	mOther := t.nonLepton().Mass()
	if mPar < mDil+mOther {
		return 0
	}
	mother := t.mother
	mDilSqr := mDil * mDil
	mParSqr := mPar * mPar
	mParCubed := mPar * mParSqr
	mOtherSqr := mOther * mOther

	switch {
	case mother.IsHadron() && mother.BaryonNumber() == 0:
		switch mother.Spin() {
		case 0: // pseudoscalars
			photon := d.photon()
			gamma2G := d.PartialWidthFor(mother, mPar, photon, photon)
			ff := kinematics.EMFormFactorPS(mother.PDG(), mDil)
			x := 1 - mDilSqr/mParSqr
			return 4 * alpha / (3 * math.Pi) * gamma2G / mDil * x * x * x * ff * ff
		case 2: // vectors
			photon, piZero := d.photon(), d.piZero()
			gammaPiG := d.PartialWidthFor(mother, mPar, piZero, photon)
			ffSqr := kinematics.EMFormFactorSqrVec(mother.PDG(), mDil)
			n1 := mParSqr - mOtherSqr
			rad := (1+mDilSqr/n1)*(1+mDilSqr/n1) - 4*mParSqr*mDilSqr/(n1*n1)
			if rad < 0 {
				return 0
			}
			return 2 * alpha / (3 * math.Pi) * gammaPiG / mDil *
				math.Pow(rad, 1.5) * ffSqr
		}
		panic("decay: unsupported meson in Dalitz decay: " + mother.Name())
	case mother.BaryonNumber() != 0:
		rad1 := (mPar+mOther)*(mPar+mOther) - mDilSqr
		rad2 := (mPar-mOther)*(mPar-mOther) - mDilSqr
		if rad1 < 0 || rad2 < 0 {
			return 0
		}
		t1 := alpha / 16 * (mPar + mOther) * (mPar + mOther) /
			(mParCubed * mOtherSqr) * math.Sqrt(rad1)
		sq2 := math.Sqrt(rad2)
		t2 := sq2 * sq2 * sq2
		ff := kinematics.FormFactorDelta(mDil)
		gammaVI := t1 * t2 * ff * ff
		return 2 * alpha / (3 * math.Pi) * gammaVI / mDil
	}
	panic("decay: non-hadron mother in Dalitz decay: " + mother.Name())
}

func (d *Database) photon() *particle.Type {
	if p := d.list.FindPDG(22); p != nil {
		return p
	}
	panic("decay: Dalitz decay requires the photon in the catalogue")
}

func (d *Database) piZero() *particle.Type {
	if p := d.list.FindPDG(111); p != nil {
		return p
	}
	panic("decay: Dalitz decay requires the neutral pion in the catalogue")
}
