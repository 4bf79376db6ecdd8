package transport

import "math"

// Internal units: millimeter, MeV, gram and mole.
const (
	Millimeter  = 1.0
	Centimeter  = 10 * Millimeter
	Meter       = 1000 * Millimeter
	Centimeter3 = Centimeter * Centimeter * Centimeter

	MeV = 1.0
	KeV = 1e-3 * MeV
	EV  = 1e-6 * MeV

	Gram = 1.0
	Mole = 1.0

	Barn      = 1e-28 * Meter * Meter
	Microbarn = 1e-6 * Barn
)

// Physical constants
const (
	Avogadro              = 6.02214076e23 / Mole
	ElectronMass          = 0.51099895 * MeV // m_e c^2
	ClassicElectronRadius = 2.8179403262e-12 * Millimeter
	FineStructure         = 1 / 137.035999084
	BohrEnergy            = 3.7289e-3 * MeV // hbar c / a0
	RydbergEnergy         = 13.605693 * EV

	// thomson is the Thomson cross section, 8 pi r_e^2 / 3.
	thomson = 8 * math.Pi / 3 * ClassicElectronRadius * ClassicElectronRadius
)
