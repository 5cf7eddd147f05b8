package decay

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/resonance/kinematics"
	"github.com/pthm-cable/resonance/particle"
)

// Sampler draws resonance masses from the normalized spectral
// distributions by rejection sampling against a truncated Cauchy
// proposal. The rejection-envelope scale factors live in the database
// per-species caches and persist across calls; they only ever grow, so a
// too-small envelope corrects itself without biasing accepted samples.
//
// A Sampler is not safe for concurrent use; give each simulation worker
// its own (the shared envelope state is lock-guarded in the database).
type Sampler struct {
	db  *Database
	rng *rand.Rand
}

// NewSampler creates a sampler on the given database and random source.
func NewSampler(db *Database, src rand.Source) *Sampler {
	return &Sampler{db: db, rng: rand.New(src)}
}

// cauchyCDF is the Cauchy distribution function with the given pole and
// half-width gamma.
func cauchyCDF(x, pole, gamma float64) float64 {
	return 0.5 + math.Atan((x-pole)/gamma)/math.Pi
}

// cauchyQuantile inverts cauchyCDF.
func cauchyQuantile(p, pole, gamma float64) float64 {
	return pole + gamma*math.Tan(math.Pi*(p-0.5))
}

// cauchyTruncated draws from a Cauchy distribution restricted to
// [lo, hi] by inverting the CDF on the corresponding quantile range.
func (s *Sampler) cauchyTruncated(pole, gamma, lo, hi float64) float64 {
	pLo, pHi := cauchyCDF(lo, pole, gamma), cauchyCDF(hi, pole, gamma)
	return cauchyQuantile(pLo+s.rng.Float64()*(pHi-pLo), pole, gamma)
}

// SampleMass draws one mass for the resonance res produced together with
// a stable particle of mass massStable at total energy cmsEnergy, with
// relative orbital angular momentum L.
func (s *Sampler) SampleMass(res *particle.Type, massStable, cmsEnergy float64, L int) float64 {
	// Largest possible mass; Nextafter keeps it below the physical limit
	// against rounding.
	maxMass := math.Nextafter(cmsEnergy-massStable, 0)
	minMass := s.db.MinMassSpectral(res)

	// Largest CM momentum, reached at the smallest mass.
	pcmMax := kinematics.PCM(cmsEnergy, massStable, minMass)
	blwMax := pcmMax * kinematics.BlattWeisskopfSqr(pcmMax, L)
	// The spectral-function ratio usually peaks at the largest mass, but
	// not always; the envelope scale factor absorbs the rest.
	sfRatioMax := math.Max(1, s.db.SpectralFunction(res, maxMass)/
		s.db.SpectralFunctionSimple(res, maxMass))

	var massRes, val float64
	for {
		envMax := blwMax * sfRatioMax * s.db.envelope1(res)
		for {
			massRes = s.cauchyTruncated(res.Mass(), res.WidthAtPole()/2, minMass, maxMass)
			pcm := kinematics.PCM(cmsEnergy, massStable, massRes)
			blw := pcm * kinematics.BlattWeisskopfSqr(pcm, L)
			q := s.db.SpectralFunction(res, massRes) /
				s.db.SpectralFunctionSimple(res, massRes)
			val = q * blw
			if val >= s.rng.Float64()*envMax {
				break
			}
		}
		if val > envMax {
			// The envelope was too small: grow it and restart, else the
			// sample would be biased toward the clipped region.
			logf("sample mass: raising envelope for %s by %g", res.Name(), val/envMax)
			s.db.growEnvelope1(res, val/envMax)
			continue
		}
		return massRes
	}
}

// SampleMassPair jointly draws the masses of two resonances produced
// together at total energy cmsEnergy with orbital angular momentum L.
func (s *Sampler) SampleMassPair(t1, t2 *particle.Type, cmsEnergy float64, L int) (float64, float64) {
	maxMass1 := math.Nextafter(cmsEnergy-s.db.MinMassSpectral(t2), 0)
	maxMass2 := math.Nextafter(cmsEnergy-s.db.MinMassSpectral(t1), 0)
	pcmMax := kinematics.PCM(cmsEnergy, s.db.MinMassSpectral(t1), s.db.MinMassSpectral(t2))
	blwMax := pcmMax * kinematics.BlattWeisskopfSqr(pcmMax, L)

	var mass1, mass2, val float64
	for {
		// The paired-resonance envelope is kept on the first species.
		envMax := blwMax * s.db.envelope2(t1)
		for {
			mass1 = s.cauchyTruncated(t1.Mass(), t1.WidthAtPole()/2,
				s.db.MinMassSpectral(t1), maxMass1)
			mass2 = s.cauchyTruncated(t2.Mass(), t2.WidthAtPole()/2,
				s.db.MinMassSpectral(t2), maxMass2)
			pcm := kinematics.PCM(cmsEnergy, mass1, mass2)
			blw := pcm * kinematics.BlattWeisskopfSqr(pcm, L)
			q1 := s.db.SpectralFunction(t1, mass1) / s.db.SpectralFunctionSimple(t1, mass1)
			q2 := s.db.SpectralFunction(t2, mass2) / s.db.SpectralFunctionSimple(t2, mass2)
			val = q1 * q2 * blw
			if val >= s.rng.Float64()*envMax {
				break
			}
		}
		if val > envMax {
			logf("sample mass pair: raising envelope for %s %s by %g",
				t1.Name(), t2.Name(), val/envMax)
			s.db.growEnvelope2(t1, val/envMax)
			continue
		}
		return mass1, mass2
	}
}
