// Package goupil drives photon transport runs used to validate the Goupil
// Monte Carlo engine against a Geant4-like reference.
//
// A run writes a fixed-size binary Header to its output file, appends one
// Record per photon entering the detector layer, then dumps the cross
// sections of the physics model as a text table.
package goupil
