package transport

import (
	"math"
	"math/rand/v2"
)

// Process is a physics process registered for the photon.
type Process interface {
	// Name returns the process name, e.g. "compt".
	Name() string

	// CrossSectionPerAtom returns the cross section of the process for a
	// photon of the given energy on an atom of atomic number z.
	CrossSectionPerAtom(energy, z float64) float64

	// Interact applies the final state of an interaction to the track.
	Interact(trk *Track, rng *rand.Rand)
}

// Transportation is the geometric transport of a track. It never interacts.
type Transportation struct{}

func (Transportation) Name() string                                 { return "Transportation" }
func (Transportation) CrossSectionPerAtom(float64, float64) float64 { return 0 }
func (Transportation) Interact(*Track, *rand.Rand)                  {}

// Photoelectric absorbs the photon. The cross section is the
// non-relativistic Born approximation for the K shell, scaled by 5/4 for
// outer shells, with a 1/E fall-off above the electron mass and a jump at
// the K edge estimated from Moseley's law.
type Photoelectric struct{}

func (Photoelectric) Name() string { return "phot" }

func (Photoelectric) CrossSectionPerAtom(energy, z float64) float64 {
	if energy <= 0 || z <= 0 {
		return 0
	}
	a2 := FineStructure * FineStructure
	sigma0 := 4 * math.Sqrt2 * a2 * a2 * math.Pow(z, 5) * thomson

	x := energy / ElectronMass
	var sigma float64
	if x < 1 {
		sigma = sigma0 * math.Pow(x, -3.5)
	} else {
		sigma = sigma0 / x
	}

	if energy < kEdge(z) {
		return 0.25 * sigma
	}
	return 1.25 * sigma
}

func (Photoelectric) Interact(trk *Track, _ *rand.Rand) {
	trk.Kill()
}

// kEdge returns the K-shell binding energy estimate from Moseley's law.
func kEdge(z float64) float64 {
	s := math.Max(z-1, 1)
	return RydbergEnergy * s * s
}

// Conversion is e+e- pair production in the nuclear and electron fields.
// The cross section is the Bethe-Heitler parameterization of Geant4's
// G4BetheHeitlerModel. Secondaries are not tracked: the photon is killed.
type Conversion struct{}

func (Conversion) Name() string { return "conv" }

func (Conversion) CrossSectionPerAtom(energy, z float64) float64 {
	if z < 0.9 || energy <= 2*ElectronMass {
		return 0
	}

	const (
		elim = 1.5 * MeV

		a0 = 8.7842e+2 * Microbarn
		a1 = -1.9625e+3 * Microbarn
		a2 = 1.2949e+3 * Microbarn
		a3 = -2.0028e+2 * Microbarn
		a4 = 1.2575e+1 * Microbarn
		a5 = -2.8333e-1 * Microbarn

		b0 = -1.0342e+1 * Microbarn
		b1 = 1.7692e+1 * Microbarn
		b2 = -8.2381 * Microbarn
		b3 = 1.3063 * Microbarn
		b4 = -9.0815e-2 * Microbarn
		b5 = 2.3586e-3 * Microbarn

		c0 = -4.5263e+2 * Microbarn
		c1 = 1.1161e+3 * Microbarn
		c2 = -8.6749e+2 * Microbarn
		c3 = 2.1773e+2 * Microbarn
		c4 = -2.0467e+1 * Microbarn
		c5 = 6.5372e-1 * Microbarn
	)

	e := math.Max(energy, elim)
	x := math.Log(e / ElectronMass)
	x2 := x * x
	x3 := x2 * x
	x4 := x3 * x
	x5 := x4 * x

	f1 := a0 + a1*x + a2*x2 + a3*x3 + a4*x4 + a5*x5
	f2 := b0 + b1*x + b2*x2 + b3*x3 + b4*x4 + b5*x5
	f3 := c0 + c1*x + c2*x2 + c3*x3 + c4*x4 + c5*x5

	sigma := (z + 1) * (f1*z + f2*z*z + f3)
	if energy < elim {
		r := (energy - 2*ElectronMass) / (elim - 2*ElectronMass)
		sigma *= r * r
	}
	return math.Max(sigma, 0)
}

func (Conversion) Interact(trk *Track, _ *rand.Rand) {
	trk.Kill()
}

// Rayleigh is coherent scattering on atoms. The cross section is the
// Thomson one for Z electrons, screened above the energy BohrEnergy*Z^(1/3).
// The angular distribution is the dipole one.
type Rayleigh struct{}

func (Rayleigh) Name() string { return "Rayl" }

func (Rayleigh) CrossSectionPerAtom(energy, z float64) float64 {
	if energy <= 0 || z <= 0 {
		return 0
	}
	ec := BohrEnergy * math.Cbrt(z)
	r := energy / ec
	return thomson * z * z / (1 + r*r)
}

func (Rayleigh) Interact(trk *Track, rng *rand.Rand) {
	var cost float64
	for {
		cost = 2*rng.Float64() - 1
		if 2*rng.Float64() <= 1+cost*cost {
			break
		}
	}
	phi := 2 * math.Pi * rng.Float64()
	trk.update(trk.Energy(), rotateUz(trk.Direction, cost, phi))
}
