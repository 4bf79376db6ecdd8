package transport

import "fmt"

// EmCalculator computes cross sections of the processes of a physics list.
type EmCalculator struct {
	phys *PhysicsList
}

func NewEmCalculator(phys *PhysicsList) *EmCalculator {
	return &EmCalculator{phys: phys}
}

// CrossSectionPerVolume returns the macroscopic cross section, in 1/mm, of
// the named process for a photon of the given energy in mat.
func (calc *EmCalculator) CrossSectionPerVolume(energy float64, process string, mat *Material) (float64, error) {
	if mat == nil {
		return 0, fmt.Errorf("transport: nil material: %w", ErrValue)
	}
	proc, ok := calc.phys.Process(process)
	if !ok {
		return 0, fmt.Errorf("transport: process %q in model %q: %w", process, calc.phys.Model, ErrUnknownProcess)
	}
	return crossSectionPerVolume(proc, energy, mat), nil
}

// CrossSectionPerAtom returns the mean cross section per atom, in mm^2, of
// the named process in mat.
func (calc *EmCalculator) CrossSectionPerAtom(energy float64, process string, mat *Material) (float64, error) {
	sigma, err := calc.CrossSectionPerVolume(energy, process, mat)
	if err != nil {
		return 0, err
	}
	return sigma / mat.AtomsPerVolume(), nil
}
