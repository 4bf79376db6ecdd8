package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysicsList(t *testing.T) {
	assert.Equal(t, []string{"livermore", "penelope", "standard"}, Models())

	for _, model := range Models() {
		t.Run(model, func(t *testing.T) {
			pl, err := NewPhysicsList(model, nil)
			require.NoError(t, err)
			pl.DisableVerbosity()

			var names []string
			for _, proc := range pl.Processes() {
				names = append(names, proc.Name())
			}
			assert.Equal(t, []string{"Transportation", "phot", "compt", "conv", "Rayl"}, names)

			proc, ok := pl.Process("compt")
			require.True(t, ok)
			assert.Equal(t, "compt", proc.Name())

			_, ok = pl.Process("eIoni")
			assert.False(t, ok)
		})
	}
}

func TestPhysicsListUnknownModel(t *testing.T) {
	_, err := NewPhysicsList("QGSP_BERT", nil)
	require.ErrorIs(t, err, ErrUnknownModel)
}

func TestEmCalculator(t *testing.T) {
	pl, err := NewPhysicsList("standard", nil)
	require.NoError(t, err)
	calc := NewEmCalculator(pl)

	sigma, err := calc.CrossSectionPerVolume(1*MeV, "compt", Water)
	require.NoError(t, err)
	// mu/rho of water at 1 MeV is about 0.0707 cm^2/g, mostly Compton.
	assert.InEpsilon(t, 0.0707, sigma*Centimeter/(Water.Density/(Gram/Centimeter3)), 0.05)

	perAtom, err := calc.CrossSectionPerAtom(1*MeV, "compt", Water)
	require.NoError(t, err)
	assert.InEpsilon(t, sigma/Water.AtomsPerVolume(), perAtom, 1e-12)

	sigma, err = calc.CrossSectionPerVolume(1*MeV, "Transportation", Water)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sigma)

	_, err = calc.CrossSectionPerVolume(1*MeV, "msc", Water)
	require.ErrorIs(t, err, ErrUnknownProcess)

	_, err = calc.CrossSectionPerVolume(1*MeV, "compt", nil)
	require.ErrorIs(t, err, ErrValue)
}
