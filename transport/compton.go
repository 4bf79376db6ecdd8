package transport

import (
	"math"
	"math/rand/v2"
)

// ComptonModel selects the parameterization of the Compton cross section.
type ComptonModel int

const (
	// EmpiricalCompton is the empirical per-atom fit used by Geant4's
	// G4KleinNishinaCompton model.
	EmpiricalCompton ComptonModel = iota
	// FreeCompton is the Klein-Nishina cross section on Z free electrons.
	FreeCompton
	// BoundCompton is FreeCompton with a suppression for electron binding
	// at energies below a few BindingScale(Z).
	BoundCompton
)

// Compton is incoherent scattering on atomic electrons. The final state is
// always sampled from the Klein-Nishina differential cross section.
type Compton struct {
	Model ComptonModel
}

func (*Compton) Name() string { return "compt" }

func (c *Compton) CrossSectionPerAtom(energy, z float64) float64 {
	if energy <= 0 || z <= 0 {
		return 0
	}
	switch c.Model {
	case FreeCompton:
		return z * kleinNishina(energy)
	case BoundCompton:
		return z * kleinNishina(energy) * -math.Expm1(-energy/BindingScale(z))
	default:
		return empiricalCompton(energy, z)
	}
}

// BindingScale is the energy scale below which electron binding suppresses
// Compton scattering, 0.7 keV * Z^(2/3).
func BindingScale(z float64) float64 {
	return 0.7 * KeV * math.Pow(z, 2.0/3.0)
}

// kleinNishina returns the total Klein-Nishina cross section per electron.
func kleinNishina(energy float64) float64 {
	k := energy / ElectronMass
	if k < 1e-4 {
		return thomson * (1 - 2*k + 26*k*k/5)
	}
	r2 := math.Pi * ClassicElectronRadius * ClassicElectronRadius
	l := math.Log1p(2 * k)
	t1 := (1 + k) / (k * k) * (2*(1+k)/(1+2*k) - l/k)
	t2 := l / (2 * k)
	t3 := (1 + 3*k) / ((1 + 2*k) * (1 + 2*k))
	return 2 * r2 * (t1 + t2 - t3)
}

func empiricalCompton(energy, z float64) float64 {
	const (
		a = 20.0
		b = 230.0
		c = 440.0

		d1 = 2.7965e-1 * Barn
		d2 = -1.8300e-1 * Barn
		d3 = 6.7527 * Barn
		d4 = -1.9798e+1 * Barn
		e1 = 1.9756e-5 * Barn
		e2 = -1.0205e-2 * Barn
		e3 = -7.3913e-2 * Barn
		e4 = 2.7079e-2 * Barn
		f1 = -3.9178e-7 * Barn
		f2 = 6.8241e-5 * Barn
		f3 = 6.0480e-5 * Barn
		f4 = 3.0274e-4 * Barn
	)

	p1 := z * (d1 + e1*z + f1*z*z)
	p2 := z * (d2 + e2*z + f2*z*z)
	p3 := z * (d3 + e3*z + f3*z*z)
	p4 := z * (d4 + e4*z + f4*z*z)

	fit := func(x float64) float64 {
		return p1*math.Log(1+2*x)/x + (p2+p3*x+p4*x*x)/(1+a*x+b*x*x+c*x*x*x)
	}

	t0 := 15 * KeV
	if z < 1.5 {
		t0 = 40 * KeV
	}

	sigma := fit(math.Max(energy, t0) / ElectronMass)
	if energy < t0 {
		const dt0 = 1 * KeV
		s := fit((t0 + dt0) / ElectronMass)
		c1 := -t0 * (s - sigma) / (sigma * dt0)
		c2 := 0.150
		if z > 1.5 {
			c2 = 0.375 - 0.0556*math.Log(z)
		}
		y := math.Log(energy / t0)
		sigma *= math.Exp(-y * (c1 + c2*y))
	}
	return math.Max(sigma, 0)
}

// Interact samples the scattered photon from the Klein-Nishina
// differential cross section, following Butcher and Messel.
func (*Compton) Interact(trk *Track, rng *rand.Rand) {
	e0 := trk.Energy()
	k := e0 / ElectronMass

	eps0 := 1 / (1 + 2*k)
	eps0sq := eps0 * eps0
	alpha1 := -math.Log(eps0)
	alpha2 := alpha1 + 0.5*(1-eps0sq)

	var eps, onecost float64
	for {
		var epssq float64
		if alpha1 > alpha2*rng.Float64() {
			eps = math.Exp(-alpha1 * rng.Float64())
			epssq = eps * eps
		} else {
			epssq = eps0sq + (1-eps0sq)*rng.Float64()
			eps = math.Sqrt(epssq)
		}
		onecost = (1 - eps) / (eps * k)
		sint2 := onecost * (2 - onecost)
		greject := 1 - eps*sint2/(1+epssq)
		if greject >= rng.Float64() {
			break
		}
	}

	phi := 2 * math.Pi * rng.Float64()
	trk.update(eps*e0, rotateUz(trk.Direction, 1-onecost, phi))
}
