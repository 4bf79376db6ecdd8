package goupil

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/niess/geant4-goupil-validation/transport"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/spatial/r3"
)

// RecordSize is the size of a binary photon record.
const RecordSize = 8 * 8

// Record is a photon entering the detector layer.
//
// Records are written after the header as little-endian
// {int64 event; float64 energy; float64 position[3]; float64 direction[3]}.
type Record struct {
	Event     int64
	Energy    float64 // in MeV
	Position  r3.Vec  // in mm
	Direction r3.Vec
}

// MarshalBinary encodes the record in its little-endian file layout.
func (rec Record) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RecordSize)
	rec.encode(buf)
	return buf, nil
}

// UnmarshalBinary decodes a record from its little-endian file layout.
func (rec *Record) UnmarshalBinary(data []byte) error {
	if len(data) < RecordSize {
		return fmt.Errorf("goupil: short record (%d bytes, want=%d): %w", len(data), RecordSize, io.ErrUnexpectedEOF)
	}
	rec.decode(data)
	return nil
}

func (rec *Record) decode(data []byte) {
	f := func(i int) float64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(data[8*i : 8*i+8]))
	}
	rec.Event = int64(binary.LittleEndian.Uint64(data[:8]))
	rec.Energy = f(1)
	rec.Position = r3.Vec{X: f(2), Y: f(3), Z: f(4)}
	rec.Direction = r3.Vec{X: f(5), Y: f(6), Z: f(7)}
}

func (rec *Record) encode(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0*8:1*8], uint64(rec.Event))
	for i, v := range []float64{
		rec.Energy,
		rec.Position.X, rec.Position.Y, rec.Position.Z,
		rec.Direction.X, rec.Direction.Y, rec.Direction.Z,
	} {
		binary.LittleEndian.PutUint64(buf[8*(i+1):8*(i+2)], math.Float64bits(v))
	}
}

// ReadRecords decodes photon records from r until EOF.
func ReadRecords(r io.Reader) ([]Record, error) {
	var (
		recs []Record
		buf  = make([]byte, RecordSize)
	)
	for {
		_, err := io.ReadFull(r, buf)
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return recs, fmt.Errorf("goupil: could not read record #%d: %w", len(recs), err)
		}
		var rec Record
		rec.decode(buf)
		recs = append(recs, rec)
	}
}

// SteppingAction records the photons entering the detector layer and stops
// their transport.
type SteppingAction struct {
	Detector int // index of the detector layer

	f    *os.File
	w    *bufio.Writer
	buf  [RecordSize]byte
	n    int64
	hist *hbook.H1D
}

// NewSteppingAction opens fname for appending records. emax is the largest
// energy of the spectrum, in MeV, and falls in its last bin.
func NewSteppingAction(fname string, detector int, emax float64) (*SteppingAction, error) {
	if !(emax > 0) {
		return nil, fmt.Errorf("goupil: invalid spectrum range (%v MeV): %w", emax, ErrEnergy)
	}
	f, err := os.OpenFile(fname, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("goupil: could not open output file [%s]: %w", fname, err)
	}
	return &SteppingAction{
		Detector: detector,
		f:        f,
		w:        bufio.NewWriter(f),
		hist:     hbook.NewH1D(100, 0, math.Nextafter(emax, math.Inf(1))),
	}, nil
}

// UserSteppingAction writes a record for a photon crossing into the
// detector layer and kills it.
func (sa *SteppingAction) UserSteppingAction(step *transport.Step) error {
	if step.Post.Medium != sa.Detector || step.Pre.Medium == sa.Detector {
		return nil
	}

	trk := step.Track
	rec := Record{
		Event:     step.Event,
		Energy:    step.Post.Energy,
		Position:  step.Post.Position,
		Direction: trk.Direction,
	}
	rec.encode(sa.buf[:])
	_, err := sa.w.Write(sa.buf[:])
	if err != nil {
		return fmt.Errorf("goupil: error writing record of event #%d: %w", step.Event, err)
	}
	sa.n++
	sa.hist.Fill(rec.Energy, 1)
	trk.Kill()
	return nil
}

// Records returns the number of records written.
func (sa *SteppingAction) Records() int64 {
	return sa.n
}

// Spectrum returns the energy spectrum of the recorded photons.
func (sa *SteppingAction) Spectrum() *hbook.H1D {
	return sa.hist
}

// Close flushes the records and closes the output file.
func (sa *SteppingAction) Close() error {
	if sa.f == nil {
		return nil
	}
	err := sa.w.Flush()
	if err != nil {
		_ = sa.f.Close()
		sa.f = nil
		return fmt.Errorf("goupil: could not flush records: %w", err)
	}
	err = sa.f.Close()
	sa.f = nil
	if err != nil {
		return fmt.Errorf("goupil: could not close output file: %w", err)
	}
	return nil
}
