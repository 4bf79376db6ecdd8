package goupil

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderLayout(t *testing.T) {
	hdr := Header{Model: "standard", Energy: 1, Events: 1000000}

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, hdr))

	want := make([]byte, HeaderSize)
	copy(want, "standard")
	copy(want[32:], []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f})
	copy(want[40:], []byte{0x40, 0x42, 0x0f, 0x00, 0x00, 0x00, 0x00, 0x00})

	assert.Equal(t, 48, HeaderSize)
	assert.Equal(t, want, buf.Bytes())
}

func TestHeaderRoundTrip(t *testing.T) {
	hdr := Header{Model: "penelope", Energy: 0.662, Events: 12345}

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, hdr))
	buf.WriteString("trailing records")

	got, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, hdr, got)
	assert.Equal(t, "trailing records", buf.String())
}

func TestHeaderModelTooLong(t *testing.T) {
	hdr := Header{Model: strings.Repeat("x", ModelSize), Energy: 1, Events: 1}
	_, err := hdr.MarshalBinary()
	require.ErrorIs(t, err, ErrModel)

	// 31 bytes fit, with the NUL terminator.
	hdr.Model = strings.Repeat("x", ModelSize-1)
	raw, err := hdr.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, byte(0), raw[ModelSize-1])
}

func TestReadHeaderShort(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader(make([]byte, HeaderSize-1)))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var hdr Header
	require.ErrorIs(t, hdr.UnmarshalBinary(nil), io.ErrUnexpectedEOF)
}
