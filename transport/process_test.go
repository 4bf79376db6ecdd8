package transport

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestKleinNishina(t *testing.T) {
	// Thomson limit, and continuity of the low energy expansion.
	assert.InEpsilon(t, thomson, kleinNishina(1*EV), 1e-4)
	k := 1e-4 * ElectronMass
	assert.InEpsilon(t, kleinNishina(0.999*k), kleinNishina(1.001*k), 1e-5)

	// 0.2112 barn per electron at 1 MeV.
	assert.InEpsilon(t, 0.2112, kleinNishina(1*MeV)/Barn, 1e-3)
}

func TestComptonModels(t *testing.T) {
	var (
		emp   = &Compton{Model: EmpiricalCompton}
		free  = &Compton{Model: FreeCompton}
		bound = &Compton{Model: BoundCompton}
	)
	for _, z := range []float64{1, 8, 11, 82} {
		for _, e := range []float64{1 * KeV, 10 * KeV, 100 * KeV, 1 * MeV, 10 * MeV} {
			sf := free.CrossSectionPerAtom(e, z)
			sb := bound.CrossSectionPerAtom(e, z)
			se := emp.CrossSectionPerAtom(e, z)
			assert.Greater(t, sf, 0.0)
			assert.Greater(t, se, 0.0)
			assert.LessOrEqual(t, sb, sf, "z=%v, e=%v", z, e)
		}
		assert.Less(t, bound.CrossSectionPerAtom(1*KeV, z), free.CrossSectionPerAtom(1*KeV, z))
		// the empirical fit follows Klein-Nishina at high energies.
		assert.InEpsilon(t,
			free.CrossSectionPerAtom(1*MeV, z),
			emp.CrossSectionPerAtom(1*MeV, z),
			0.05, "z=%v", z,
		)
	}
	assert.Equal(t, 0.0, emp.CrossSectionPerAtom(0, 11))
}

func TestComptonInteract(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	proc := &Compton{}
	const e0 = 1 * MeV
	emin := e0 / (1 + 2*e0/ElectronMass)
	for i := 0; i < 10000; i++ {
		trk := NewPhoton(0, e0, r3.Vec{}, r3.Vec{X: 1, Y: 1})
		proc.Interact(&trk, rng)
		e := trk.Energy()
		assert.True(t, e >= emin*(1-1e-12) && e <= e0, "e=%v", e)
		assert.InDelta(t, 1, r3.Norm(trk.Direction), 1e-12)

		// Compton formula between energy and scattering angle.
		cost := r3.Dot(trk.Direction, r3.Unit(r3.Vec{X: 1, Y: 1}))
		assert.InDelta(t, e0/(1+e0/ElectronMass*(1-cost)), e, 1e-9)
		assert.True(t, trk.Alive())
	}
}

func TestRayleighInteract(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	mean := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		trk := NewPhoton(0, 10*KeV, r3.Vec{}, r3.Vec{Z: -1})
		Rayleigh{}.Interact(&trk, rng)
		assert.Equal(t, 10*KeV, trk.Energy())
		assert.InDelta(t, 1, r3.Norm(trk.Direction), 1e-12)
		mean += -trk.Direction.Z
	}
	// the dipole distribution is symmetric.
	assert.InDelta(t, 0, mean/n, 0.02)
}

func TestAbsorbingProcesses(t *testing.T) {
	for _, proc := range []Process{Photoelectric{}, Conversion{}} {
		trk := NewPhoton(0, 5*MeV, r3.Vec{}, r3.Vec{Z: 1})
		proc.Interact(&trk, nil)
		assert.False(t, trk.Alive(), proc.Name())
	}
}

func TestConversion(t *testing.T) {
	conv := Conversion{}
	assert.Equal(t, 0.0, conv.CrossSectionPerAtom(2*ElectronMass, 11))
	assert.Equal(t, 0.0, conv.CrossSectionPerAtom(10*MeV, 0.5))
	assert.Greater(t, conv.CrossSectionPerAtom(1.2*MeV, 11), 0.0)

	prev := 0.0
	for _, e := range []float64{1.1, 1.5, 2, 5, 10, 100} {
		sigma := conv.CrossSectionPerAtom(e*MeV, 82)
		assert.Greater(t, sigma, prev, "e=%v MeV", e)
		prev = sigma
	}
}

func TestPhotoelectric(t *testing.T) {
	phot := Photoelectric{}
	const z = 26
	edge := kEdge(z)
	assert.InEpsilon(t, 5.0, phot.CrossSectionPerAtom(edge*1.0001, z)/phot.CrossSectionPerAtom(edge*0.9999, z), 1e-3)

	// steep decrease with energy, larger for heavier elements.
	assert.Greater(t, phot.CrossSectionPerAtom(50*KeV, z), phot.CrossSectionPerAtom(100*KeV, z))
	assert.Greater(t, phot.CrossSectionPerAtom(100*KeV, 82), phot.CrossSectionPerAtom(100*KeV, z))
	assert.False(t, math.IsInf(phot.CrossSectionPerAtom(1*KeV, 1), 0))
}

func TestRotateUz(t *testing.T) {
	for _, u := range []r3.Vec{{Z: 1}, {Z: -1}, r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3})} {
		v := rotateUz(u, 0.3, 1.2)
		assert.InDelta(t, 1, r3.Norm(v), 1e-12)
		assert.InDelta(t, 0.3, r3.Dot(u, v), 1e-12)
	}
}
