package goupil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// ModelSize is the size of the model name field, NUL terminator
	// included.
	ModelSize = 32

	// HeaderSize is the size of a binary header.
	HeaderSize = ModelSize + 8 + 8
)

// Header holds the run parameters written at the start of the output file.
//
// Its binary layout is the one of the C struct
//
//	struct header {
//	    char   model[32];
//	    double energy;
//	    long   events;
//	};
//
// on a little-endian LP64 host: the NUL-padded model name, then the energy
// in MeV and the number of events, with no padding.
type Header struct {
	Model  string
	Energy float64 // in MeV
	Events int64
}

// MarshalBinary encodes the header into HeaderSize bytes.
func (hdr Header) MarshalBinary() ([]byte, error) {
	if len(hdr.Model) >= ModelSize {
		return nil, fmt.Errorf(
			"goupil: model name %q too long (%d bytes, max=%d): %w",
			hdr.Model, len(hdr.Model), ModelSize-1, ErrModel,
		)
	}
	buf := make([]byte, HeaderSize)
	copy(buf[:ModelSize], hdr.Model)
	binary.LittleEndian.PutUint64(buf[ModelSize:ModelSize+8], math.Float64bits(hdr.Energy))
	binary.LittleEndian.PutUint64(buf[ModelSize+8:], uint64(hdr.Events))
	return buf, nil
}

// UnmarshalBinary decodes a header from HeaderSize bytes. The model name
// stops at the first NUL byte.
func (hdr *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("goupil: short header (%d bytes, want=%d): %w", len(data), HeaderSize, io.ErrUnexpectedEOF)
	}
	model := data[:ModelSize]
	if i := bytes.IndexByte(model, 0); i >= 0 {
		model = model[:i]
	}
	hdr.Model = string(model)
	hdr.Energy = math.Float64frombits(binary.LittleEndian.Uint64(data[ModelSize : ModelSize+8]))
	hdr.Events = int64(binary.LittleEndian.Uint64(data[ModelSize+8 : HeaderSize]))
	return nil
}

// WriteHeader writes the binary header to w.
func WriteHeader(w io.Writer, hdr Header) error {
	buf, err := hdr.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	if err != nil {
		return fmt.Errorf("goupil: could not write header: %w", err)
	}
	return nil
}

// ReadHeader reads a binary header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var (
		hdr Header
		buf = make([]byte, HeaderSize)
	)
	_, err := io.ReadFull(r, buf)
	if err != nil {
		return hdr, fmt.Errorf("goupil: could not read header: %w", err)
	}
	err = hdr.UnmarshalBinary(buf)
	return hdr, err
}
